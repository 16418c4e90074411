// Package formula implements the closed-form survey design calculators:
// sample size, margin of error, two-proportion significance, stratified
// allocation, field cost and the demand funnel.
//
// Every function is pure. Degenerate inputs (zero divisors, census samples,
// zero variance) resolve to zero or to ErrNotComputable and never leak NaN
// or Inf to callers.
package formula
