package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	all := Topics()
	require.Len(t, all, 19)
	assert.Equal(t, Topic("永續策略"), all[0])
	assert.Equal(t, Topic("人權平等"), all[18])

	seen := make(map[Topic]bool)
	for i, tp := range all {
		assert.False(t, seen[tp], "duplicate topic %q", tp)
		seen[tp] = true
		assert.Equal(t, i, IndexOf(tp))
		assert.True(t, Contains(tp))
	}
}

func TestTopicsReturnsCopy(t *testing.T) {
	all := Topics()
	all[0] = "changed"
	assert.Equal(t, Topic("永續策略"), Topics()[0])
}

func TestAt(t *testing.T) {
	tp, ok := At(9)
	require.True(t, ok)
	assert.Equal(t, Topic("資訊安全"), tp)

	_, ok = At(-1)
	assert.False(t, ok)
	_, ok = At(Len())
	assert.False(t, ok)
}

func TestContainsUnknown(t *testing.T) {
	assert.False(t, Contains("不存在的議題"))
	assert.Equal(t, -1, IndexOf("不存在的議題"))
}

func TestParseIssueType(t *testing.T) {
	tests := []struct {
		in   string
		want IssueType
		ok   bool
	}{
		{"actual", IssueActual, true},
		{"potential", IssuePotential, true},
		{"實際", IssueActual, true},
		{"潛在", IssuePotential, true},
		{"Actual", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseIssueType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields(t *testing.T) {
	assert.Len(t, Fields, 5)
	assert.Len(t, ScaleFields, 4)
	assert.False(t, FieldIssueType.IsScale())
	for _, f := range ScaleFields {
		assert.True(t, f.IsScale(), f)
	}
	assert.False(t, Field("bogus").Valid())
	assert.False(t, Field("bogus").IsScale())

	f, ok := ParseField("風險議題")
	require.True(t, ok)
	assert.Equal(t, FieldRiskIssue, f)
}

func TestHeader(t *testing.T) {
	assert.Equal(t,
		[]string{"項目", "議題類型", "機會", "機會實現可能性", "風險議題", "風險發生可能性"},
		Header())
}
