// Package services holds the domain services that span aggregates or
// depend on the pricing catalog:
//   - RightsResolver: effective rights level for an order configuration
//   - PricingEngine: quotes and prices against the catalog
//   - CertificateRightsMapper: the clause set frozen onto a certificate
//   - TalentAssigner: matches paid orders to producers
//
// All of them are pure; none performs I/O.
package services
