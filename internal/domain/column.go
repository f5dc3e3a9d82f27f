package domain

// ColumnDef describes how a field is presented and which interactions the
// table allows on it.
type ColumnDef struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Type       string `json:"type" yaml:"type"` // "string", "number" or "boolean"
	Sortable   bool   `json:"sortable" yaml:"sortable"`
	Filterable bool   `json:"filterable" yaml:"filterable"`
}

// FindColumn returns the column with the given id.
func FindColumn(columns []ColumnDef, id string) (ColumnDef, error) {
	for _, c := range columns {
		if c.ID == id {
			return c, nil
		}
	}
	return ColumnDef{}, ErrNotFound("column %q not found", id)
}
