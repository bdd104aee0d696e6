package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainlab/materiality/internal/assessment"
	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/export"
	"github.com/sustainlab/materiality/internal/selection"
)

var scenarioTopics = []catalog.Topic{
	"永續策略", "誠信經營", "公司治理", "稅務政策", "風險控管",
	"法規遵循", "營運持續管理", "營運績效", "創新與數位責任", "資訊安全",
}

func newTestSession(t *testing.T, writers ...export.Writer) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := New(Options{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel), Writers: writers})
	return s, &buf
}

func selectScenario(t *testing.T, s *Session) {
	t.Helper()
	for _, tp := range scenarioTopics {
		on, err := s.Toggle(tp)
		require.NoError(t, err)
		require.True(t, on)
	}
}

func readRows(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimPrefix(string(data), "\uFEFF")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func TestNew(t *testing.T) {
	s, buf := newTestSession(t)
	assert.Equal(t, PhaseSelecting, s.Phase())
	assert.NotEmpty(t, s.ID())
	assert.Nil(t, s.Form())
	assert.Contains(t, buf.String(), s.ID())
	assert.Contains(t, buf.String(), `"component":"session"`)
}

func TestEndToEndScenario(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.True(t, s.CanGenerate())
	require.NoError(t, s.Generate())
	assert.Equal(t, PhaseAssessing, s.Phase())
	require.Equal(t, 10, s.Form().Len())

	dir := t.TempDir()
	paths, err := s.Save(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "materiality-assessed-王小明.csv")}, paths)
	assert.Equal(t, PhaseExported, s.Phase())
	assert.Nil(t, s.Form())
	assert.Equal(t, paths, s.Saved())

	lines := readRows(t, paths[0])
	require.Len(t, lines, 11)
	assert.Equal(t, "項目,議題類型,機會,機會實現可能性,風險議題,風險發生可能性", lines[0])
	for i, line := range lines[1:] {
		assert.Equal(t, scenarioTopics[i].String()+",實際,3,3,3,3", line)
	}
}

func TestGenerate_Gates(t *testing.T) {
	t.Run("identity first", func(t *testing.T) {
		s, _ := newTestSession(t)
		err := s.Generate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIdentityIncomplete))
		assert.True(t, errors.Is(err, assessment.ErrPrecondition))
		assert.Equal(t, "請填寫姓名和部門！", Warning(err))
	})

	t.Run("whitespace identity", func(t *testing.T) {
		s, _ := newTestSession(t)
		require.NoError(t, s.SetIdentity("  ", "永續發展部"))
		selectScenario(t, s)
		assert.True(t, errors.Is(s.Generate(), ErrIdentityIncomplete))
	})

	t.Run("count", func(t *testing.T) {
		s, _ := newTestSession(t)
		require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
		for _, tp := range scenarioTopics[:9] {
			_, err := s.Toggle(tp)
			require.NoError(t, err)
		}
		err := s.Generate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSelectionCount))
		assert.True(t, errors.Is(err, assessment.ErrPrecondition))
		assert.Equal(t, "必須選擇10個項目！", Warning(err))
		assert.Equal(t, PhaseSelecting, s.Phase())
	})
}

func TestToggle_EleventhWarns(t *testing.T) {
	s, buf := newTestSession(t)
	selectScenario(t, s)
	before := s.Selection().Selected()

	_, err := s.Toggle("供應商管理")
	require.Error(t, err)
	assert.True(t, errors.Is(err, selection.ErrSelectionFull))
	assert.True(t, IsWarning(err))
	assert.Equal(t, "最多只能選擇10個項目！", Warning(err))
	assert.Equal(t, before, s.Selection().Selected())
	assert.Contains(t, buf.String(), "toggle rejected")
}

func TestBack_DiscardsRecordsKeepsSelection(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())
	require.NoError(t, s.SetField(0, catalog.FieldOpportunity, "5"))

	require.NoError(t, s.Back())
	assert.Equal(t, PhaseSelecting, s.Phase())
	assert.Nil(t, s.Form())
	assert.Equal(t, scenarioTopics, s.Selection().Selected())

	require.NoError(t, s.Generate())
	r, err := s.Form().Record(0)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Opportunity)
}

func TestPhaseGating(t *testing.T) {
	s, _ := newTestSession(t)

	assert.True(t, errors.Is(s.Back(), assessment.ErrPrecondition))
	assert.True(t, errors.Is(s.SetField(0, catalog.FieldRiskIssue, "2"), assessment.ErrPrecondition))
	_, err := s.Save(t.TempDir())
	assert.True(t, errors.Is(err, assessment.ErrPrecondition))
	assert.True(t, errors.Is(s.Reset(), assessment.ErrPrecondition))

	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())

	// Selection and identity are frozen while assessing.
	_, err = s.Toggle("供應商管理")
	assert.True(t, errors.Is(err, assessment.ErrPrecondition))
	assert.True(t, errors.Is(s.SetIdentity("someone", "else"), assessment.ErrPrecondition))
	assert.True(t, errors.Is(s.Generate(), assessment.ErrPrecondition))
	assert.Equal(t, "王小明", s.Identity().Name)
}

func TestSetField_Errors(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())

	err := s.SetField(0, catalog.FieldOpportunity, "6")
	assert.True(t, errors.Is(err, assessment.ErrRange))
	assert.Equal(t, "評分必須介於1到5之間！", Warning(err))

	err = s.SetField(0, catalog.FieldIssueType, "unknown")
	assert.True(t, errors.Is(err, assessment.ErrInvalidEnum))

	err = s.SetField(10, catalog.FieldIssueType, "潛在")
	assert.True(t, errors.Is(err, assessment.ErrIndex))
	assert.True(t, IsWarning(err))
}

func TestSave_FailureStaysAssessing(t *testing.T) {
	s, buf := newTestSession(t)
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())
	require.NoError(t, s.SetField(4, catalog.FieldRiskLikelihood, "1"))

	_, err := s.Save(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, assessment.ErrIO))
	assert.Equal(t, "無法保存結果，請選擇其他資料夾！", Warning(err))
	assert.Equal(t, PhaseAssessing, s.Phase())
	assert.Contains(t, buf.String(), "export failed")

	// Edits survive the failed attempt.
	r, err := s.Form().Record(4)
	require.NoError(t, err)
	assert.Equal(t, 1, r.RiskLikelihood)

	_, err = s.Save(t.TempDir())
	require.NoError(t, err)
}

func TestSave_MultipleFormats(t *testing.T) {
	s, _ := newTestSession(t, export.CSV{}, export.XLSX{})
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())

	dir := t.TempDir()
	paths, err := s.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "materiality-assessed-王小明.csv"),
		filepath.Join(dir, "materiality-assessed-王小明.xlsx"),
	}, paths)
}

// failingWriter always fails with an I/O error.
type failingWriter struct{}

func (failingWriter) Format() string { return "broken" }

func (failingWriter) Write(*assessment.FormModel, string, string) (string, error) {
	return "", assessment.ErrIO
}

func TestSave_PartialFailureRemovesWrittenFiles(t *testing.T) {
	s, _ := newTestSession(t, export.CSV{}, failingWriter{})
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())

	dir := t.TempDir()
	paths, err := s.Save(dir)
	assert.True(t, errors.Is(err, assessment.ErrIO))
	assert.Nil(t, paths)
	assert.NoFileExists(t, filepath.Join(dir, "materiality-assessed-王小明.csv"))
	assert.Equal(t, PhaseAssessing, s.Phase())
	assert.NotNil(t, s.Form())

	s.writers = []export.Writer{export.CSV{}}
	_, err = s.Save(dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "materiality-assessed-王小明.csv"))
}

func TestReset(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetIdentity("王小明", "永續發展部"))
	selectScenario(t, s)
	require.NoError(t, s.Generate())
	_, err := s.Save(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, PhaseSelecting, s.Phase())
	assert.Equal(t, 0, s.Selection().Count())
	assert.Nil(t, s.Saved())
	assert.Equal(t, "王小明", s.Identity().Name)
}

func TestWarning(t *testing.T) {
	assert.Equal(t, "", Warning(nil))
	assert.Contains(t, Warning(errors.New("boom")), "boom")
	assert.False(t, IsWarning(errors.New("boom")))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "selecting", PhaseSelecting.String())
	assert.Equal(t, "assessing", PhaseAssessing.String())
	assert.Equal(t, "exported", PhaseExported.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
