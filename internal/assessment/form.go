package assessment

import (
	"iter"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/selection"
)

// FormModel holds one record per selected topic, in selection order.
type FormModel struct {
	identity selection.Identity
	records  []Record
}

// Initialize creates a form for exactly catalog.SelectionSize distinct
// catalog topics and a complete identity. Records start at their defaults.
func Initialize(topics []catalog.Topic, identity selection.Identity) (*FormModel, error) {
	if len(topics) != catalog.SelectionSize {
		return nil, goerr.Wrap(ErrPrecondition, "wrong number of topics",
			goerr.V("count", len(topics)), goerr.V("want", catalog.SelectionSize))
	}
	if !identity.Complete() {
		return nil, goerr.Wrap(ErrPrecondition, "identity incomplete")
	}

	seen := make(map[catalog.Topic]bool, len(topics))
	records := make([]Record, 0, len(topics))
	for _, t := range topics {
		if !catalog.Contains(t) {
			return nil, goerr.Wrap(ErrPrecondition, "topic not in catalog", goerr.V("topic", t))
		}
		if seen[t] {
			return nil, goerr.Wrap(ErrPrecondition, "duplicate topic", goerr.V("topic", t))
		}
		seen[t] = true
		records = append(records, NewRecord(t))
	}

	return &FormModel{identity: identity, records: records}, nil
}

// Identity returns the respondent the form was generated for.
func (m *FormModel) Identity() selection.Identity {
	return m.identity
}

// Len returns the number of records.
func (m *FormModel) Len() int {
	return len(m.records)
}

// Record returns a copy of the record at index i.
func (m *FormModel) Record(i int) (Record, error) {
	if err := m.checkIndex(i); err != nil {
		return Record{}, err
	}
	return m.records[i], nil
}

// Records returns a copy of all records.
func (m *FormModel) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// SetScale sets a scale field of record i.
func (m *FormModel) SetScale(i int, f catalog.Field, v int) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	ref := m.records[i].scaleRef(f)
	if ref == nil {
		return goerr.Wrap(ErrUnknownField, "not a scale field", goerr.V(FieldKey, f))
	}
	if v < catalog.ScaleMin || v > catalog.ScaleMax {
		return goerr.Wrap(ErrRange, "scale value must be between 1 and 5",
			goerr.V(IndexKey, i), goerr.V(FieldKey, f), goerr.V(ValueKey, v))
	}
	*ref = v
	return nil
}

// SetIssueType sets the issue type of record i.
func (m *FormModel) SetIssueType(i int, t catalog.IssueType) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	if !t.Valid() {
		return goerr.Wrap(ErrInvalidEnum, "issue type must be actual or potential",
			goerr.V(IndexKey, i), goerr.V(ValueKey, t))
	}
	m.records[i].IssueType = t
	return nil
}

// SetField sets one field of record i from its textual form. Issue types
// accept the code or the label; scale fields accept decimal integers.
func (m *FormModel) SetField(i int, f catalog.Field, value string) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}

	switch {
	case f == catalog.FieldIssueType:
		t, ok := catalog.ParseIssueType(value)
		if !ok {
			return goerr.Wrap(ErrInvalidEnum, "issue type must be actual or potential",
				goerr.V(IndexKey, i), goerr.V(ValueKey, value))
		}
		return m.SetIssueType(i, t)

	case f.IsScale():
		v, err := strconv.Atoi(value)
		if err != nil {
			return goerr.Wrap(ErrRange, "scale value must be an integer",
				goerr.V(IndexKey, i), goerr.V(FieldKey, f), goerr.V(ValueKey, value))
		}
		return m.SetScale(i, f, v)
	}

	return goerr.Wrap(ErrUnknownField, "field not in schema", goerr.V(FieldKey, f))
}

// ExportRows yields one row per record in selection order. The sequence
// reads the current records each time it is ranged over.
func (m *FormModel) ExportRows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range m.records {
			if !yield(r.Row()) {
				return
			}
		}
	}
}

func (m *FormModel) checkIndex(i int) error {
	if i < 0 || i >= len(m.records) {
		return goerr.Wrap(ErrIndex, "no record at index",
			goerr.V(IndexKey, i), goerr.V("len", len(m.records)))
	}
	return nil
}
