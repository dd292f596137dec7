package store

import (
	"graze/internal/resource"
)

// Record is one stored row, keyed by column name. Values are int64, string or
// time.Time according to the column kind, or nil for SQL NULL.
type Record = map[string]any

// Store defines the data-access operations every resource shares. All methods
// are parameterized by a resource descriptor; the implementation never needs
// per-table code.
type Store interface {
	// ListAll returns every row of the resource's table in natural store
	// order. An empty table yields an empty slice, not an error.
	ListAll(d resource.Descriptor) ([]Record, error)

	// GetByID returns the row matching id, or nil (with a nil error) when
	// no row matches.
	GetByID(d resource.Descriptor, id int64) (Record, error)

	// Insert writes a new row from the supplied fields. The store assigns
	// the id and any server timestamp and returns the complete stored row.
	Insert(d resource.Descriptor, fields map[string]any) (Record, error)

	// Update applies the supplied fields to the row matching id and
	// returns the number of rows affected; 0 means no such row.
	Update(d resource.Descriptor, id int64, fields map[string]any) (int64, error)

	// Delete removes the row matching id and returns the number of rows
	// affected; 0 means no such row.
	Delete(d resource.Descriptor, id int64) (int64, error)

	Close() error
}
