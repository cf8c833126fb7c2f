package section

// Field is one named cell of a row.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Row is an ordered mapping from field name to cell text.
type Row []Field

// Get returns the value of the first field with the given name.
func (r Row) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value of the named field, or "" when absent.
func (r Row) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Names returns the field names in order.
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Map returns the row as an unordered map. Later duplicates win.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// TruncatedRow records a body row whose cell count differed from the header.
type TruncatedRow struct {
	// Row is the zero-based position of the row in the table body.
	Row int `json:"row" yaml:"row"`

	// Cells is the number of cells the row carried.
	Cells int `json:"cells" yaml:"cells"`

	// Fields is the number of header fields.
	Fields int `json:"fields" yaml:"fields"`
}

// Table is an extracted header/body table.
type Table struct {
	// Fields are the normalized header names, in order.
	Fields []string `json:"fields" yaml:"fields"`

	// Rows holds one Row per body row.
	Rows []Row `json:"rows" yaml:"rows"`

	// Truncated lists the rows that were cut to the shorter of cell and field count.
	Truncated []TruncatedRow `json:"truncated" yaml:"truncated,omitempty"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Column returns the value of the named field for every row.
// Rows lacking the field contribute "".
func (t Table) Column(name string) []string {
	col := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		col[i] = r.Value(name)
	}
	return col
}
