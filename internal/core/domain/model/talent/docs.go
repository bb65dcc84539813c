// Package talent provides the Talent aggregate: the producers who work on
// commissioned orders. A talent serves one or more product lines and holds a
// bounded number of active orders at a time.
package talent
