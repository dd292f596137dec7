package resource

// Kind is the scan/serialization type of a column.
type Kind int

const (
	Text Kind = iota
	Int
	Time
)

// Column is one table column of a resource.
type Column struct {
	Name string
	Kind Kind
}

// Descriptor enumerates everything the store, validator and handlers need to
// know about one resource: its table, columns, and validation rules. The six
// resources are instances of this one shape, so the request state machine is
// written once.
type Descriptor struct {
	Name        string   // singular, used in the not-found message
	Path        string   // route segment under /api/
	Table       string   // table name
	Columns     []Column // all columns including id, in schema order
	Required    []string // create-required columns, declaration order
	Optional    []string // accepted on create but not required
	Updatable   []string // columns a partial update may touch; [0] is primary
	Timestamp   string   // server-assigned column on insert, "" if none
	RequireAuth bool     // routes demand a bearer token
}

// NotFoundMessage is the body text for a missing record.
func (d Descriptor) NotFoundMessage() string {
	return d.Name + " doesn't exist"
}

// ColumnKind reports the kind of a named column.
func (d Descriptor) ColumnKind(name string) (Kind, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c.Kind, true
		}
	}
	return 0, false
}

// writable reports whether a column may be supplied by a client on create.
func (d Descriptor) writable(name string) bool {
	if name == "id" || name == d.Timestamp {
		return false
	}
	_, ok := d.ColumnKind(name)
	return ok
}

// CreateFields filters a decoded request body down to the columns a create may
// supply. Unknown keys, the id, and server-assigned columns are dropped, and
// JSON numbers destined for integer columns are coerced to int64.
func (d Descriptor) CreateFields(body map[string]any) map[string]any {
	fields := make(map[string]any)
	for key, value := range body {
		if !d.writable(key) {
			continue
		}
		fields[key] = d.coerce(key, value)
	}
	return fields
}

// UpdateFields filters a decoded request body down to the updatable columns
// carrying a non-null value.
func (d Descriptor) UpdateFields(body map[string]any) map[string]any {
	fields := make(map[string]any)
	for _, name := range d.Updatable {
		value, ok := body[name]
		if !ok || value == nil {
			continue
		}
		fields[name] = d.coerce(name, value)
	}
	return fields
}

func (d Descriptor) coerce(name string, value any) any {
	kind, _ := d.ColumnKind(name)
	if kind != Int {
		return value
	}
	// encoding/json decodes every number as float64
	if f, ok := value.(float64); ok && f == float64(int64(f)) {
		return int64(f)
	}
	return value
}

// Validate checks a create payload against the required set. It returns the
// name of the first missing column in declaration order, so the error message
// is deterministic regardless of payload key order, and "" when the payload is
// complete.
func (d Descriptor) Validate(fields map[string]any) string {
	for _, name := range d.Required {
		if value, ok := fields[name]; !ok || value == nil {
			return name
		}
	}
	return ""
}

// ValidateUpdate checks a partial-update payload. At least one updatable
// column must carry a value; it reports whether that holds.
func (d Descriptor) ValidateUpdate(fields map[string]any) bool {
	return len(fields) > 0
}

// PrimaryUpdatable is the column named in the empty-update error message.
func (d Descriptor) PrimaryUpdatable() string {
	return d.Updatable[0]
}
