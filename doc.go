// Package apportion computes seat apportionments with exact divisor methods.
//
// The library is organized in layers, each in its own package:
//
//	rational/  immutable exact rationals with standard rounding and half detection
//	core/      shared value types: named vote weights and tie states
//	matrix/    dense integer seat matrices and shape validators
//	divisor/   single-dimension Sainte-Laguë apportionment with an election key
//	biprop/    biproportional (double-proportional) matrix apportionment
//
// Every run is pure and synchronous. No floating point is used in the
// computation path; ties are reported as values and never resolved.
//
// Quick example:
//
//	in := biprop.Input{
//		Weights:       weights,     // R×C named vote counts
//		RowTargets:    []int{2, 1}, // seats per election
//		ColumnTargets: []int{1, 2}, // seats per list group
//	}
//	res, err := biprop.Apportion(in)
//	if err != nil { ... }
//	if res.HasTies() {
//		// res.TiedCells() need a lot decision
//	}
//
// The apportion command (cmd/apportion) solves problem files in JSON, YAML
// or TOML and serves the same engines over HTTP.
package apportion
