// Package sqlfix rewrites single-line SQL INSERT statements so that a target
// database which generates its own identifiers can accept them.
//
// The package has two parts:
//
//   - [SplitValues]: a quote-aware splitter for the text inside VALUES (...).
//   - [Rewriter]: matches `INSERT INTO <table> (<cols>) VALUES (<vals>);` at the
//     start of a line and drops (or replaces) a leading `id` column together
//     with its value.
//
// Lines that do not have that exact shape are returned unchanged. Nothing in
// this package touches the filesystem; see package migration for the file
// driver.
package sqlfix
