// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts avoid persistence and transport details. Each write method is a
// boundary where catalog invariants (referential deletion guards, stock and
// price rules) are checked and applied atomically.
package aggregates
