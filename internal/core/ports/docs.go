// Package ports defines the contracts between the application core and its
// adapters: repositories and the unit of work for persistence, the
// notification dispatcher and the promo validator.
package ports
