package compile

import (
	"sync"

	"github.com/katalvlaran/numexpr/expr"
	"github.com/katalvlaran/numexpr/vec"
)

// ParamContext is an externally owned, live symbol→value table consulted
// for variables in the Dynamic state. A Func holds it by reference and
// never mutates it; the owner (typically a UI or controller layer) updates
// values between calls and every subsequent call observes the new values
// without recompilation.
//
// Safe for concurrent use: Set/Delete may race with calls reading the
// context. A call takes one snapshot read per required symbol; it does not
// hold the context locked across the whole invocation.
type ParamContext struct {
	mu   sync.RWMutex
	vals map[expr.Symbol]vec.Value
}

// NewParamContext returns an empty context.
func NewParamContext() *ParamContext {
	return &ParamContext{vals: make(map[expr.Symbol]vec.Value)}
}

// Set stores a value for s. Accepted value forms are those of call
// arguments (float64, int kinds, []float64, vec.Value).
func (c *ParamContext) Set(s expr.Symbol, value any) error {
	v, err := toValue(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.vals[s] = v
	c.mu.Unlock()
	return nil
}

// Get returns the current value for s, if any.
func (c *ParamContext) Get(s expr.Symbol) (vec.Value, bool) {
	c.mu.RLock()
	v, ok := c.vals[s]
	c.mu.RUnlock()
	return v, ok
}

// Delete removes the value for s, if present.
func (c *ParamContext) Delete(s expr.Symbol) {
	c.mu.Lock()
	delete(c.vals, s)
	c.mu.Unlock()
}

// Len returns the number of stored symbols.
func (c *ParamContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vals)
}
