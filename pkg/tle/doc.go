// Package tle decodes, validates and re-encodes NORAD Two-Line Element
// (TLE) sets, the fixed-column ASCII format used to distribute mean
// orbital elements for SGP4/SDP4 propagation.
//
// A TLE record is two (optionally three, with a satellite-name line
// prepended) lines of exactly 69 characters. The package splits
// parsing into the stages CelesTrak and Space-Track describe: line
// canonicalization, column extraction against a static schema,
// layered validation producing stable error codes, and normalization
// of the format's assumed-decimal and mantissa/exponent numeric
// encodings. A resilient state-machine entry point accepts corrupted
// input and returns a best-effort record plus a trace of the recovery
// actions it took.
//
// The package does no propagation and no network access. The core
// parse/validate/normalize pipeline takes strings in and structs out;
// CatalogFile is the one exception, a thin optional wrapper for
// reading and compressing on-disk catalog bundles. See cmd/tlego for a
// CLI built on top of all of it.
package tle
