// Package tangle implements a call-by-need interpreter for a small functional
// term language whose evaluation depends on an externally supplied state
// store (a mapping from opaque condition keys to values).
//
// Evaluating a term produces a result term and a dependency set: the keys of
// the state entries the result depended on. When the state changes, a caller
// can cheaply decide whether a cached result is still valid by intersecting
// changed keys against the stored dependency set. Unresolved state lookups
// surface as signals — effectful placeholders that propagate through the
// computation so a caller can resolve them externally and re-evaluate.
//
// The package is organized the way a heap-centric interpreter usually is:
// heap.go owns allocation and the scalar constructors, hash.go structural
// hashing, term.go and its siblings (list.go, record.go, hashmap.go, lambda.go,
// condition.go, iterator*.go, cell.go) define the term variants, evaluator.go drives
// reduction to weak head normal form, builtin*.go implements the primitive
// operators, and query.go implements the GraphQL-shaped record/iterator
// resolver. Everything outside the evaluator (state.go, cache.go, errors.go)
// is embedder-facing convenience, not part of the reduction semantics.
package tangle
