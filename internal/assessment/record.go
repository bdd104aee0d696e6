package assessment

import (
	"strconv"

	"github.com/sustainlab/materiality/internal/catalog"
)

// Record is the rating attached to one selected topic.
type Record struct {
	Topic                 catalog.Topic
	IssueType             catalog.IssueType
	Opportunity           int
	OpportunityLikelihood int
	RiskIssue             int
	RiskLikelihood        int
}

// NewRecord creates a record for topic with default values.
func NewRecord(topic catalog.Topic) Record {
	return Record{
		Topic:                 topic,
		IssueType:             catalog.IssueActual,
		Opportunity:           catalog.ScaleDefault,
		OpportunityLikelihood: catalog.ScaleDefault,
		RiskIssue:             catalog.ScaleDefault,
		RiskLikelihood:        catalog.ScaleDefault,
	}
}

// Scale returns the value of a scale field.
func (r Record) Scale(f catalog.Field) (int, bool) {
	if p := r.scaleRef(f); p != nil {
		return *p, true
	}
	return 0, false
}

func (r *Record) scaleRef(f catalog.Field) *int {
	switch f {
	case catalog.FieldOpportunity:
		return &r.Opportunity
	case catalog.FieldOpportunityLikelihood:
		return &r.OpportunityLikelihood
	case catalog.FieldRiskIssue:
		return &r.RiskIssue
	case catalog.FieldRiskLikelihood:
		return &r.RiskLikelihood
	}
	return nil
}

// Row is the flat export shape of a record.
type Row struct {
	Topic                 string
	IssueType             string
	Opportunity           int
	OpportunityLikelihood int
	RiskIssue             int
	RiskLikelihood        int
}

// Row converts the record to its export shape.
func (r Record) Row() Row {
	return Row{
		Topic:                 r.Topic.String(),
		IssueType:             r.IssueType.Label(),
		Opportunity:           r.Opportunity,
		OpportunityLikelihood: r.OpportunityLikelihood,
		RiskIssue:             r.RiskIssue,
		RiskLikelihood:        r.RiskLikelihood,
	}
}

// Strings returns the row cells in header order.
func (r Row) Strings() []string {
	return []string{
		r.Topic,
		r.IssueType,
		strconv.Itoa(r.Opportunity),
		strconv.Itoa(r.OpportunityLikelihood),
		strconv.Itoa(r.RiskIssue),
		strconv.Itoa(r.RiskLikelihood),
	}
}

// Values returns the row cells in header order with scales kept numeric.
func (r Row) Values() []any {
	return []any{
		r.Topic,
		r.IssueType,
		r.Opportunity,
		r.OpportunityLikelihood,
		r.RiskIssue,
		r.RiskLikelihood,
	}
}
