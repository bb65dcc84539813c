// Package catalog holds the versioned, read-only price list: per product
// line tiers, add-ons, the rights add-on matrix, and the revision/version
// limits every order inherits from its tier.
//
// A Catalog is built once and injected into the pricing engine, the rights
// resolver and the certificate mapper; nothing reads a package-level
// singleton. Its Version is stored on every issued certificate.
package catalog
