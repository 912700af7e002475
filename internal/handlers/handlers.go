package handlers

import "database/sql"

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB *sql.DB
}

// Querier defines a common interface for QueryRow/Query, which is implemented
// by both *sql.DB and *sql.Tx. This allows helpers to be used in or out of a
// transaction.
type Querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}
