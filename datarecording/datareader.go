package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// A Reader reads back the tables of a database written by a DataRecorder.
type Reader struct {
	db *sql.DB
}

// OpenReader opens a database file written by a DataRecorder. The file must
// exist.
func OpenReader(filename string) (*Reader, error) {
	_, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	return &Reader{db: db}, nil
}

// NewReaderWithDB creates a Reader over a database that is already open.
// Closing the reader closes the database.
func NewReaderWithDB(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Tables lists the tables of the database by name.
func (r *Reader) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

// A Selection narrows down the rows ReadTable returns.
type Selection struct {
	// Column and Value keep the rows whose Column equals Value. An empty
	// Column keeps every row.
	Column string
	Value  any

	// OrderBy lists the columns to sort by, in ascending order. Without it,
	// rows come back in the order they were recorded.
	OrderBy []string
}

func (s Selection) query(tableName string) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)

	b.WriteString("SELECT * FROM ")
	b.WriteString(quoteIdentifier(tableName))

	if s.Column != "" {
		b.WriteString(" WHERE ")
		b.WriteString(quoteIdentifier(s.Column))
		b.WriteString(" = ?")

		args = append(args, s.Value)
	}

	b.WriteString(" ORDER BY ")

	if len(s.OrderBy) == 0 {
		b.WriteString("rowid")
		return b.String(), args
	}

	for i, c := range s.OrderBy {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(quoteIdentifier(c))
	}

	return b.String(), args
}

// ReadTable reads the selected rows of a table into values of T. Columns are
// matched to the exported fields of T by name. Columns without a field are
// skipped, and fields without a column keep their zero value.
func ReadTable[T any](
	ctx context.Context,
	r *Reader,
	tableName string,
	sel Selection,
) ([]T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot read rows into %s", t)
	}

	query, args := sel.query(tableName)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var entries []T

	for rows.Next() {
		var entry T

		err := rows.Scan(scanTargets(reflect.ValueOf(&entry).Elem(), columns)...)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", tableName, err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanTargets(entry reflect.Value, columns []string) []any {
	targets := make([]any, len(columns))

	for i, c := range columns {
		field := entry.FieldByName(c)
		if field.IsValid() && field.CanSet() {
			targets[i] = field.Addr().Interface()
			continue
		}

		targets[i] = new(any)
	}

	return targets
}
