package store

// RawTable is a delimited export as read from disk: a header row and string cells.
type RawTable struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// Index maps each header to its column position. Later duplicates do not override earlier ones.
func (t *RawTable) Index() map[string]int {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	return idx
}

type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnFloat
	ColumnInt
	ColumnBool
	ColumnDate
)

type Column struct {
	Name string
	Type ColumnType
}

// Table is an output table handed to a sink. Row cells hold string, float64,
// int, bool, time.Time or nil values matching the column types.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
