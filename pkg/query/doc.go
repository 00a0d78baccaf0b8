// Package query turns raw calculator inputs into an immutable Request.
//
// Every field is parsed independently and all failures are reported
// together as ValidationErrors. The cosmology Mode decides how ΩΛ is
// obtained and the NegativeRedshiftPolicy decides what a negative redshift
// means.
package query
