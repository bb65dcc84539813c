// Package message models the append-only conversation attached to an order.
package message
