package assessment

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/selection"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "materiality-assessed-王小明.csv", FileName("王小明", "csv"))
	assert.Equal(t, "materiality-assessed-a_b_c.xlsx", FileName(`a/b\c`, "xlsx"))
}

func TestToFile_EndToEnd(t *testing.T) {
	topics := []catalog.Topic{
		"永續策略", "誠信經營", "公司治理", "稅務政策", "風險控管",
		"法規遵循", "營運持續管理", "營運績效", "創新與數位責任", "資訊安全",
	}
	m, err := Initialize(topics, selection.Identity{Name: "王小明", Department: "永續發展部"})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := m.ToFile(dir, "王小明")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "materiality-assessed-王小明.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 11)
	assert.Equal(t, []string{"項目", "議題類型", "機會", "機會實現可能性", "風險議題", "風險發生可能性"}, records[0])

	for i, rec := range records[1:] {
		assert.Equal(t, topics[i].String(), rec[0])
		assert.Equal(t, "實際", rec[1])
		assert.Equal(t, []string{"3", "3", "3", "3"}, rec[2:])
	}
}

func TestToFile_RoundTrip(t *testing.T) {
	m := newTestForm(t)
	for i := 0; i < m.Len(); i++ {
		require.NoError(t, m.SetScale(i, catalog.FieldOpportunity, i%5+1))
		require.NoError(t, m.SetScale(i, catalog.FieldOpportunityLikelihood, (i+1)%5+1))
		require.NoError(t, m.SetScale(i, catalog.FieldRiskIssue, (i+2)%5+1))
		require.NoError(t, m.SetScale(i, catalog.FieldRiskLikelihood, (i+3)%5+1))
		if i%2 == 1 {
			require.NoError(t, m.SetIssueType(i, catalog.IssuePotential))
		}
	}

	path, err := m.ToFile(t.TempDir(), "tester")
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, m.Len()+1)
	i := 0
	for row := range m.ExportRows() {
		assert.Equal(t, row.Strings(), records[i+1])
		i++
	}
}

func TestToFile_Overwrites(t *testing.T) {
	m := newTestForm(t)
	dir := t.TempDir()

	_, err := m.ToFile(dir, "王小明")
	require.NoError(t, err)
	require.NoError(t, m.SetScale(0, catalog.FieldRiskIssue, 1))
	path, err := m.ToFile(dir, "王小明")
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 11)
	assert.Equal(t, "1", records[1][4])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestToFile_MissingDirectory(t *testing.T) {
	m := newTestForm(t)
	_, err := m.ToFile(filepath.Join(t.TempDir(), "nope"), "王小明")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
}

func TestToFile_NotADirectory(t *testing.T) {
	m := newTestForm(t)
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := m.ToFile(file, "王小明")
	assert.True(t, errors.Is(err, ErrIO))
}

func TestToFile_Unwritable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	m := newTestForm(t)
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	_, err := m.ToFile(dir, "王小明")
	assert.True(t, errors.Is(err, ErrIO))
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	rows := func(yield func(Row) bool) {
		yield(Row{Topic: "a,b", IssueType: "實際", Opportunity: 1, OpportunityLikelihood: 2, RiskIssue: 3, RiskLikelihood: 4})
	}
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimPrefix(buf.String(), "\uFEFF"), "\n")
	assert.Equal(t, `"a,b",實際,1,2,3,4`, lines[1])
}
