package catalog

// IssueType classifies a topic as an actual or a potential issue.
type IssueType string

const (
	IssueActual    IssueType = "actual"
	IssuePotential IssueType = "potential"
)

// IssueTypes lists the allowed issue types in dropdown order.
var IssueTypes = []IssueType{IssueActual, IssuePotential}

var issueLabels = map[IssueType]string{
	IssueActual:    "實際",
	IssuePotential: "潛在",
}

// Label returns the exported label for the issue type.
func (t IssueType) Label() string {
	return issueLabels[t]
}

// Valid reports whether t is one of the allowed issue types.
func (t IssueType) Valid() bool {
	_, ok := issueLabels[t]
	return ok
}

// ParseIssueType accepts either the code ("actual") or the label ("實際").
func ParseIssueType(s string) (IssueType, bool) {
	for _, t := range IssueTypes {
		if s == string(t) || s == t.Label() {
			return t, true
		}
	}
	return "", false
}

// Field names one column of an assessment record.
type Field string

const (
	FieldIssueType             Field = "issueType"
	FieldOpportunity           Field = "opportunity"
	FieldOpportunityLikelihood Field = "opportunityLikelihood"
	FieldRiskIssue             Field = "riskIssue"
	FieldRiskLikelihood        Field = "riskLikelihood"
)

// Fields lists the record fields in form and export order.
var Fields = []Field{
	FieldIssueType,
	FieldOpportunity,
	FieldOpportunityLikelihood,
	FieldRiskIssue,
	FieldRiskLikelihood,
}

// ScaleFields lists the bounded integer fields.
var ScaleFields = Fields[1:]

var fieldLabels = map[Field]string{
	FieldIssueType:             "議題類型",
	FieldOpportunity:           "機會",
	FieldOpportunityLikelihood: "機會實現可能性",
	FieldRiskIssue:             "風險議題",
	FieldRiskLikelihood:        "風險發生可能性",
}

// Label returns the column label for the field.
func (f Field) Label() string {
	return fieldLabels[f]
}

// IsScale reports whether f is one of the 1-5 scale fields.
func (f Field) IsScale() bool {
	return f != FieldIssueType && f.Valid()
}

// Valid reports whether f is part of the record schema.
func (f Field) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// ParseField accepts either the field name or its column label.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if s == string(f) || s == f.Label() {
			return f, true
		}
	}
	return "", false
}

// Scale bounds and default.
const (
	ScaleMin     = 1
	ScaleMax     = 5
	ScaleDefault = 3
)

// TopicHeader is the label of the first export column.
const TopicHeader = "項目"

// Header returns the export header row.
func Header() []string {
	h := make([]string, 0, len(Fields)+1)
	h = append(h, TopicHeader)
	for _, f := range Fields {
		h = append(h, f.Label())
	}
	return h
}
