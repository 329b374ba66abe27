// Package capability implements the deferred-failure capability loader.
//
// A fixed set of optional capability modules is attempted once during
// application startup. Each attempt produces exactly one Registry entry:
// either Bound, referencing the module's attribute table, or Deferred,
// carrying the human-readable reason the load failed. A Deferred entry does
// not fail at load time; it raises a descriptive UnavailableError only when
// a caller actually accesses one of its attributes.
//
// The Registry is written once by Load and never mutated afterwards, so any
// number of goroutines may read it concurrently without synchronization.
package capability
