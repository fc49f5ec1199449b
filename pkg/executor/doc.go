// Package executor removes the targets of a planned removal set.
//
// Each target is attempted once and independently: a failure is recorded
// in the report and the batch continues. Before every removal the target
// is checked again against the set's base path and refused if it is not
// strictly below it.
package executor
