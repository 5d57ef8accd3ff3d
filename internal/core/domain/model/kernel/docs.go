// Package kernel contains shared value objects used by every aggregate in the
// domain model. Types in this package are immutable and safe for concurrent
// use; their zero values are invalid and must be created through the provided
// factory functions.
package kernel
