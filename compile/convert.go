package compile

import (
	"fmt"

	"github.com/katalvlaran/numexpr/vec"
)

// toValue coerces the loose argument/binding forms callers may pass into
// a vec.Value. Accepted: vec.Value, float64, float32, the signed integer
// kinds, and []float64 (wrapped without copying).
func toValue(v any) (vec.Value, error) {
	switch x := v.(type) {
	case vec.Value:
		return x, nil
	case float64:
		return vec.Scalar(x), nil
	case float32:
		return vec.Scalar(float64(x)), nil
	case int:
		return vec.Scalar(float64(x)), nil
	case int32:
		return vec.Scalar(float64(x)), nil
	case int64:
		return vec.Scalar(float64(x)), nil
	case []float64:
		return vec.Array(x), nil
	}
	return vec.Value{}, fmt.Errorf("%T: %w", v, ErrBadArgument)
}
