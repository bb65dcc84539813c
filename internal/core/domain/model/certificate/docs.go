// Package certificate models the rights certificate issued once per order.
//
// A Certificate stores the Rights produced by the rights mapper together
// with the Inputs, catalog version and mapping version used to produce
// them, and a digest of the rights encoding. Re-reading a certificate
// never re-runs the mapping against the live catalog.
package certificate
