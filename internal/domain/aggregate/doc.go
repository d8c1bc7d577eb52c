// Package aggregate derives the dashboard views from a sequence of
// normalized climb records.
//
// Every function here is pure: it reads the input slice, never mutates it,
// and returns fresh values. Callers recompute from the full record sequence
// whenever it changes. Point totals are summed as floats and rounded once
// with model.RoundPoints after all additions. Sorts are stable, so ties
// keep the order in which their group was first encountered.
package aggregate
