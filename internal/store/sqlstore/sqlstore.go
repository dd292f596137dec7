package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"graze/internal/resource"
	"graze/internal/store"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// SQLStore implements the Store interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:     db,
		dbType: DBType(driver),
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema() error {
	var stmts []string

	if s.dbType == Postgres {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS markets (
				id SERIAL PRIMARY KEY,
				market_name TEXT NOT NULL,
				hero_image TEXT NOT NULL,
				schedule TEXT NOT NULL,
				market_location TEXT NOT NULL,
				summary TEXT NOT NULL,
				market_description TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS vendors (
				id SERIAL PRIMARY KEY,
				vendor_name TEXT NOT NULL,
				vendor_description TEXT NOT NULL,
				market_stall TEXT NOT NULL,
				market_id INTEGER NOT NULL REFERENCES markets(id)
			);`,
			`CREATE TABLE IF NOT EXISTS products (
				id SERIAL PRIMARY KEY,
				product_name TEXT NOT NULL,
				product_description TEXT,
				product_category TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS price_list (
				id SERIAL PRIMARY KEY,
				product_id INTEGER NOT NULL REFERENCES products(id),
				vendor_id INTEGER NOT NULL REFERENCES vendors(id),
				price TEXT NOT NULL,
				units TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS folders (
				id SERIAL PRIMARY KEY,
				folder_name TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS notes (
				id SERIAL PRIMARY KEY,
				folder_id INTEGER NOT NULL REFERENCES folders(id),
				note_title TEXT NOT NULL,
				content TEXT NOT NULL,
				date_modified TIMESTAMP NOT NULL
			);`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS markets (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				market_name TEXT NOT NULL,
				hero_image TEXT NOT NULL,
				schedule TEXT NOT NULL,
				market_location TEXT NOT NULL,
				summary TEXT NOT NULL,
				market_description TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS vendors (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				vendor_name TEXT NOT NULL,
				vendor_description TEXT NOT NULL,
				market_stall TEXT NOT NULL,
				market_id INTEGER NOT NULL,
				FOREIGN KEY(market_id) REFERENCES markets(id)
			);`,
			`CREATE TABLE IF NOT EXISTS products (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_name TEXT NOT NULL,
				product_description TEXT,
				product_category TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS price_list (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_id INTEGER NOT NULL,
				vendor_id INTEGER NOT NULL,
				price TEXT NOT NULL,
				units TEXT NOT NULL,
				FOREIGN KEY(product_id) REFERENCES products(id),
				FOREIGN KEY(vendor_id) REFERENCES vendors(id)
			);`,
			`CREATE TABLE IF NOT EXISTS folders (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				folder_name TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				folder_id INTEGER NOT NULL,
				note_title TEXT NOT NULL,
				content TEXT NOT NULL,
				date_modified DATETIME NOT NULL,
				FOREIGN KEY(folder_id) REFERENCES folders(id)
			);`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func columnNames(d resource.Descriptor) string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// scanRow scans the current row into a Record keyed by column name.
func scanRow(d resource.Descriptor, scan func(...any) error) (store.Record, error) {
	targets := make([]any, len(d.Columns))
	for i, c := range d.Columns {
		switch c.Kind {
		case resource.Int:
			targets[i] = new(sql.NullInt64)
		case resource.Time:
			targets[i] = new(sql.NullTime)
		default:
			targets[i] = new(sql.NullString)
		}
	}

	if err := scan(targets...); err != nil {
		return nil, err
	}

	rec := make(store.Record, len(d.Columns))
	for i, c := range d.Columns {
		switch t := targets[i].(type) {
		case *sql.NullInt64:
			if t.Valid {
				rec[c.Name] = t.Int64
			} else {
				rec[c.Name] = nil
			}
		case *sql.NullTime:
			if t.Valid {
				rec[c.Name] = t.Time
			} else {
				rec[c.Name] = nil
			}
		case *sql.NullString:
			if t.Valid {
				rec[c.Name] = t.String
			} else {
				rec[c.Name] = nil
			}
		}
	}
	return rec, nil
}

func (s *SQLStore) ListAll(d resource.Descriptor) ([]store.Record, error) {
	rows, err := s.db.Query("SELECT " + columnNames(d) + " FROM " + d.Table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []store.Record{}
	for rows.Next() {
		rec, err := scanRow(d, rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLStore) GetByID(d resource.Descriptor, id int64) (store.Record, error) {
	row := s.db.QueryRow(s.rebind("SELECT "+columnNames(d)+" FROM "+d.Table+" WHERE id = ?"), id)
	rec, err := scanRow(d, row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLStore) Insert(d resource.Descriptor, fields map[string]any) (store.Record, error) {
	// Walk the descriptor's column order so the statement is deterministic.
	var names []string
	var args []any
	for _, c := range d.Columns {
		if c.Name == "id" {
			continue
		}
		if c.Name == d.Timestamp {
			names = append(names, c.Name)
			args = append(args, time.Now())
			continue
		}
		if value, ok := fields[c.Name]; ok {
			names = append(names, c.Name)
			args = append(args, value)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := "INSERT INTO " + d.Table + " (" + strings.Join(names, ", ") + ") VALUES (" + placeholders + ")"

	var id int64
	if s.dbType == Postgres {
		if err := s.db.QueryRow(s.rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return nil, err
		}
	} else {
		result, err := s.db.Exec(query, args...)
		if err != nil {
			return nil, err
		}
		if id, err = result.LastInsertId(); err != nil {
			return nil, err
		}
	}

	// Re-read so the caller gets the assigned id and timestamp back.
	return s.GetByID(d, id)
}

func (s *SQLStore) Update(d resource.Descriptor, id int64, fields map[string]any) (int64, error) {
	var assignments []string
	var args []any
	for _, c := range d.Columns {
		if value, ok := fields[c.Name]; ok && c.Name != "id" {
			assignments = append(assignments, c.Name+" = ?")
			args = append(args, value)
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}
	args = append(args, id)

	result, err := s.db.Exec(s.rebind("UPDATE "+d.Table+" SET "+strings.Join(assignments, ", ")+" WHERE id = ?"), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQLStore) Delete(d resource.Descriptor, id int64) (int64, error) {
	result, err := s.db.Exec(s.rebind("DELETE FROM "+d.Table+" WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
