package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vanai-hackathon/surveyscope/internal/dataset"
)

// TableName is the table that holds one row per respondent.
const TableName = "responses"

var (
	// ErrNotLoaded is returned by queries before LoadDataset succeeds.
	ErrNotLoaded = errors.New("no dataset loaded")

	// ErrUnknownColumn is returned when a column is not part of the loaded dataset.
	ErrUnknownColumn = errors.New("unknown column")
)

// ResponseDB is an in-memory SQLite database holding one survey.
type ResponseDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// columns are the loaded column names in file order.
	columns []string
}

// ResultSet is the result of an ad-hoc query with every value rendered
// as text. NULL values are rendered as "NULL".
type ResultSet struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// GroupMean is the mean score of one demographic group.
type GroupMean struct {
	// Group is the value of the grouping column.
	Group string `json:"group"`

	// Mean is the average of the numeric scores in the group.
	Mean float64 `json:"mean"`

	// Count is the number of numeric scores in the group.
	Count int `json:"count"`
}

// OpenMemory opens an empty in-memory database.
func OpenMemory(ctx context.Context) (*ResponseDB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: gets its own database, so the pool
	// must never hold more than one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &ResponseDB{db: db}, nil
}

// Close closes the database connection and discards its contents.
func (r *ResponseDB) Close() error {
	return r.db.Close()
}

// Columns returns the loaded column names in file order.
func (r *ResponseDB) Columns() []string {
	return r.columns
}

// LoadDataset creates the responses table from ds and inserts every row
// in a single transaction. It can only be called once per ResponseDB.
func (r *ResponseDB) LoadDataset(ctx context.Context, ds *dataset.Dataset) error {
	names, rows, err := ds.Records()
	if err != nil {
		return err
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	create := fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(quoted, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", //nolint:gosec // identifiers are quoted
		TableName, strings.Join(quoted, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(names))
	for i, row := range rows {
		for j, cell := range row {
			args[j] = cellValue(cell)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.columns = names
	return nil
}

// cellValue maps a dataset cell to its stored value.
func cellValue(cell *string) any {
	if cell == nil {
		return nil
	}
	if f, ok := dataset.ParseNumber(*cell); ok {
		return f
	}
	return *cell
}

// Query runs an arbitrary SQL statement and returns its rows as text.
func (r *ResponseDB) Query(ctx context.Context, query string) (*ResultSet, error) {
	if r.columns == nil {
		return nil, ErrNotLoaded
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &ResultSet{Columns: cols, Rows: make([][]string, 0)}
	values := make([]any, len(cols))
	scan := make([]any, len(cols))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

// formatValue renders a scanned SQLite value.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// MeanByGroup returns the mean of valueCol for every non-missing value of
// groupCol, highest mean first. Only numeric scores are counted; groups
// without any are left out.
func (r *ResponseDB) MeanByGroup(ctx context.Context, groupCol, valueCol string) ([]GroupMean, error) {
	if r.columns == nil {
		return nil, ErrNotLoaded
	}
	for _, c := range []string{groupCol, valueCol} {
		if !r.hasColumn(c) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
	}

	g, v := quoteIdent(groupCol), quoteIdent(valueCol)
	query := fmt.Sprintf(`
		SELECT %[1]s, AVG(%[2]s), COUNT(%[2]s)
		FROM %[3]s
		WHERE %[1]s IS NOT NULL AND typeof(%[2]s) IN ('real', 'integer')
		GROUP BY %[1]s
		ORDER BY 2 DESC, 1`, g, v, TableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query group means: %w", err)
	}
	defer rows.Close()

	var means []GroupMean
	for rows.Next() {
		var group any
		var m GroupMean
		if err := rows.Scan(&group, &m.Mean, &m.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group mean: %w", err)
		}
		m.Group = formatValue(group)
		means = append(means, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group means: %w", err)
	}

	return means, nil
}

func (r *ResponseDB) hasColumn(name string) bool {
	for _, c := range r.columns {
		if c == name {
			return true
		}
	}
	return false
}

// quoteIdent quotes a column name for use in SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
