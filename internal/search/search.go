// Package search implements the filtered article search.
//
// A search call is a short pipeline of stateless steps:
//
//	Predicates -> Compiler -> Engine (primary query) -> LoadTags (one batched
//	query for every returned id) -> Assemble
//
// Every value supplied by a caller travels as a bound parameter. The only
// caller-controlled text interpolated into SQL is the sort column and
// direction, and both are checked against a closed allow-list first.
package search
