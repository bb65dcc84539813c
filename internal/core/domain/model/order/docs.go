// Package order holds the Order aggregate and the per-product-line
// lifecycles that drive it.
//
// Each product line (voice, music, orchestra) has its own transition table
// over a shared Status set. Events are applied through Order.Apply, which
// either performs the whole transition or returns a typed error and leaves
// the order untouched. Limits on revisions and delivered versions are frozen
// from the tier at creation time.
//
// Orchestra deliveries open a client review window; once it elapses,
// CheckAutoComplete completes the order. The check is idempotent and is run
// both on read and by the background sweep.
package order
