// Package postgres implements the store interfaces against PostgreSQL.
// It owns the SQL for the tasks table, maps driver errors onto the
// store sentinels, and converts between domain tasks and rows,
// including the nullable due date column.
package postgres
