// Package vec provides the scalar-or-vector value model and the broadcast
// primitives exposed to compiled numeric callables.
//
// A Value is either a scalar float64 or a reference to a []float64. The
// three primitives mirror what any numeric array library offers:
//
//	AsArray(v, n)           — materialize a Value as a length-n array
//	BroadcastLength(vals…)  — the common length implied by a mix of
//	                          scalars and arrays (scalars broadcast)
//	ZerosLike(v)            — a zero Value with v's shape
//
// Broadcasting is deliberately one-dimensional: every array participant
// must share one length, scalars stretch to it. Mismatched lengths fail
// with ErrShapeMismatch; nothing is silently truncated or recycled.
//
// Values do not own array storage — Array wraps the caller's slice without
// copying. Treat a Value handed to someone else as frozen for the duration
// of their use.
package vec
