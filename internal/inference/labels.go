package inference

import (
	"fmt"
	"sort"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

// LabelTable is the fitted label encoder for every categorical column.
// The code of a label is its position in the fitted class list.
type LabelTable struct {
	codes map[string]map[string]int
}

// NewLabelTable builds a table from per-field class lists
func NewLabelTable(classes map[string][]string) (*LabelTable, error) {
	codes := make(map[string]map[string]int, len(classes))
	for field, labels := range classes {
		if len(labels) == 0 {
			return nil, fmt.Errorf("label encoder %q has no classes", field)
		}
		m := make(map[string]int, len(labels))
		for i, label := range labels {
			if _, dup := m[label]; dup {
				return nil, fmt.Errorf("label encoder %q has duplicate class %q", field, label)
			}
			m[label] = i
		}
		codes[field] = m
	}
	return &LabelTable{codes: codes}, nil
}

// Encode returns the fitted code of label for field
func (t *LabelTable) Encode(field, label string) (int, error) {
	m, ok := t.codes[field]
	if !ok {
		return 0, features.SchemaMismatchf("label encoder", "no encoder fitted for %q", field)
	}
	code, ok := m[label]
	if !ok {
		return 0, &features.CategoryError{Field: field, Label: label}
	}
	return code, nil
}

// Fields lists the fields the table can encode, sorted
func (t *LabelTable) Fields() []string {
	fields := make([]string, 0, len(t.codes))
	for f := range t.codes {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// requireFields checks that every categorical column has an encoder
func (t *LabelTable) requireFields(fields []string) error {
	for _, f := range fields {
		if _, ok := t.codes[f]; !ok {
			return features.SchemaMismatchf("label encoder", "missing encoder for %q", f)
		}
	}
	return nil
}
