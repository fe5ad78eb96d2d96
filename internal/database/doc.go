// Package database loads a survey into an in-memory SQLite database so it
// can be explored with SQL.
//
// The responses table has one untyped column per survey field. Cells that
// read as numbers are stored as REAL, other cells as TEXT, and missing
// cells as NULL, so aggregates such as AVG only see real scores.
//
// Nothing is written to disk; the database lives as long as the ResponseDB.
package database
