package record

import (
	"maps"
	"strings"
)

// Row is one entity's view of a physical result row.
type Row interface {
	Get(field string) (any, error)
	ToMap() (map[string]any, error)
}

// Segment is the run of columns that belongs to one entity in a joined row.
type Segment struct {
	columns []string
	values  []any
}

// NewSegment pairs column names with scanned values. Both slices are kept, not copied.
func NewSegment(columns []string, values []any) *Segment {
	return &Segment{
		columns: columns,
		values:  values,
	}
}

func (s *Segment) Columns() []string {
	return s.columns
}

// Get matches field against the column names exactly first, then without regard to case.
func (s *Segment) Get(field string) (any, error) {
	for i, col := range s.columns {
		if col == field {
			return s.values[i], nil
		}
	}
	for i, col := range s.columns {
		if strings.EqualFold(col, field) {
			return s.values[i], nil
		}
	}
	return nil, ErrFieldNotFound(field)
}

// ToMap keys values by column name. A repeated column keeps its first value.
func (s *Segment) ToMap() (map[string]any, error) {
	result := make(map[string]any, len(s.columns))
	for i, col := range s.columns {
		if _, exists := result[col]; exists {
			continue
		}
		result[col] = s.values[i]
	}
	return result, nil
}

// Values is a row backed by a map, as decoded from storage.
type Values map[string]any

func (v Values) Get(field string) (any, error) {
	val, ok := v[field]
	if !ok {
		return nil, ErrFieldNotFound(field)
	}
	return val, nil
}

func (v Values) ToMap() (map[string]any, error) {
	return maps.Clone(map[string]any(v)), nil
}
