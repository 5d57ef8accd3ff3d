// Package order contains the Order aggregate and its value objects: the
// lifecycle Status state machine with its transition table, the independent
// PaymentStatus axis, ordered line Items, and the domain Events emitted on
// committed state changes.
package order
