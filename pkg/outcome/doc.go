// Package outcome holds the Result[T] tagged union used across impass:
// a value that is either a success payload or an error, never both.
//
// Highlights:
// - Success/Fail/From: construct Result[T]
// - Result/Err/IsSuccess/IsFailure: inspect the outcome
// - Cause/Causes: walk an error's chain of underlying causes, outermost
//   first, with a bounded depth guarding against cyclic chains
//
// A Result carries an id and a UTC creation timestamp so outcomes can be
// correlated in diagnostics.
package outcome
