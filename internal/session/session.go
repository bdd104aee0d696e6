package session

import (
	"errors"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"

	"github.com/sustainlab/materiality/internal/assessment"
	"github.com/sustainlab/materiality/internal/catalog"
	"github.com/sustainlab/materiality/internal/export"
	"github.com/sustainlab/materiality/internal/logging"
	"github.com/sustainlab/materiality/internal/selection"
)

// Phase is the page the respondent is on.
type Phase int

const (
	PhaseSelecting Phase = iota // Entering identity and picking topics
	PhaseAssessing              // Rating the selected topics
	PhaseExported               // Results written; records discarded
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseAssessing:
		return "assessing"
	case PhaseExported:
		return "exported"
	}
	return "unknown"
}

// Gate errors returned by Generate. Both wrap assessment.ErrPrecondition.
var (
	ErrIdentityIncomplete = goerr.Wrap(assessment.ErrPrecondition, "name and department are required")
	ErrSelectionCount     = goerr.Wrap(assessment.ErrPrecondition, "exactly 10 topics must be selected")
)

// Options configures a Session.
type Options struct {
	Logger  zerolog.Logger
	Writers []export.Writer
}

// Session is one respondent's run through the form. It is owned by a
// single presentation layer and is not safe for concurrent use.
type Session struct {
	id        string
	phase     Phase
	selection *selection.Controller
	form      *assessment.FormModel
	writers   []export.Writer
	saved     []string
	logger    zerolog.Logger

	// remembered is the selection frozen by Generate.
	remembered []catalog.Topic
}

// New creates a Session in the selecting phase. Without writers it
// exports CSV only.
func New(opts Options) *Session {
	writers := opts.Writers
	if len(writers) == 0 {
		writers = []export.Writer{export.CSV{}}
	}
	id := uuid.New().String()
	s := &Session{
		id:        id,
		phase:     PhaseSelecting,
		selection: selection.New(),
		writers:   writers,
		logger:    logging.Component(opts.Logger, "session").With().Str("session_id", id).Logger(),
	}
	s.logger.Info().Msg("session started")
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Phase returns the current page.
func (s *Session) Phase() Phase { return s.phase }

// Selection exposes the read side of the topic selection.
func (s *Session) Selection() *selection.Controller { return s.selection }

// Form returns the current form, or nil outside PhaseAssessing.
func (s *Session) Form() *assessment.FormModel { return s.form }

// Saved returns the paths written by the last successful Save.
func (s *Session) Saved() []string { return s.saved }

// Identity returns the recorded respondent.
func (s *Session) Identity() selection.Identity { return s.selection.Identity() }

// SetIdentity records name and department while selecting.
func (s *Session) SetIdentity(name, department string) error {
	if err := s.require(PhaseSelecting, "set identity"); err != nil {
		return err
	}
	s.selection.SetIdentity(name, department)
	return nil
}

// Toggle flips a topic while selecting. A rejected eleventh topic returns
// selection.ErrSelectionFull with the selection unchanged.
func (s *Session) Toggle(topic catalog.Topic) (bool, error) {
	if err := s.require(PhaseSelecting, "toggle topic"); err != nil {
		return false, err
	}
	on, err := s.selection.Toggle(topic)
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic.String()).Int("count", s.selection.Count()).Msg("toggle rejected")
		return on, err
	}
	s.logger.Debug().Str("topic", topic.String()).Bool("selected", on).Int("count", s.selection.Count()).Msg("topic toggled")
	return on, nil
}

// CanGenerate reports whether Generate would succeed.
func (s *Session) CanGenerate() bool {
	return s.phase == PhaseSelecting && s.selection.IdentityComplete() && s.selection.CanProceed()
}

// Generate moves from selecting to assessing, creating default records for
// the selected topics in selection order.
func (s *Session) Generate() error {
	if err := s.require(PhaseSelecting, "generate form"); err != nil {
		return err
	}
	if !s.selection.IdentityComplete() {
		s.logger.Warn().Msg("generate rejected: identity incomplete")
		return ErrIdentityIncomplete
	}
	if !s.selection.CanProceed() {
		s.logger.Warn().Int("count", s.selection.Count()).Msg("generate rejected: selection count")
		return goerr.Wrap(ErrSelectionCount, "cannot generate form", goerr.V("count", s.selection.Count()))
	}

	topics := s.selection.Selected()
	form, err := assessment.Initialize(topics, s.selection.Identity())
	if err != nil {
		return err
	}
	s.form = form
	s.remembered = topics
	s.phase = PhaseAssessing
	s.logger.Info().Int("records", form.Len()).Msg("form generated")
	return nil
}

// Back returns to selecting, discarding the records and restoring the
// selection the form was generated from.
func (s *Session) Back() error {
	if err := s.require(PhaseAssessing, "go back"); err != nil {
		return err
	}
	s.selection.Restore(s.remembered)
	s.form = nil
	s.phase = PhaseSelecting
	s.logger.Info().Int("count", s.selection.Count()).Msg("form discarded")
	return nil
}

// SetField edits one record while assessing.
func (s *Session) SetField(index int, field catalog.Field, value string) error {
	if err := s.require(PhaseAssessing, "set field"); err != nil {
		return err
	}
	if err := s.form.SetField(index, field, value); err != nil {
		s.logger.Debug().Err(err).Int("index", index).Str("field", string(field)).Msg("field rejected")
		return err
	}
	return nil
}

// Save writes every configured format into dir. On success the records are
// discarded and the session moves to PhaseExported. If any format fails,
// the files already written by this call are removed and the session stays
// in PhaseAssessing so another directory can be chosen.
func (s *Session) Save(dir string) ([]string, error) {
	if err := s.require(PhaseAssessing, "save"); err != nil {
		return nil, err
	}

	name := s.selection.Identity().Name
	paths := make([]string, 0, len(s.writers))
	for _, w := range s.writers {
		path, err := w.Write(s.form, dir, name)
		if err != nil {
			s.logger.Error().Err(err).Str("format", w.Format()).Str("dir", dir).Msg("export failed")
			s.discard(paths)
			return nil, err
		}
		paths = append(paths, path)
	}

	s.saved = paths
	s.form = nil
	s.phase = PhaseExported
	s.logger.Info().Strs("paths", paths).Msg("assessment exported")
	return paths, nil
}

// discard removes the files of a partially failed save.
func (s *Session) discard(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", p).Msg("failed to remove partial export")
			continue
		}
		s.logger.Debug().Str("path", p).Msg("partial export removed")
	}
}

// Reset starts a new assessment after an export, keeping the identity and
// clearing the selection.
func (s *Session) Reset() error {
	if err := s.require(PhaseExported, "reset"); err != nil {
		return err
	}
	s.selection.Clear()
	s.remembered = nil
	s.saved = nil
	s.phase = PhaseSelecting
	s.logger.Info().Msg("session reset")
	return nil
}

func (s *Session) require(p Phase, op string) error {
	if s.phase != p {
		return goerr.Wrap(assessment.ErrPrecondition, "operation not allowed in this phase",
			goerr.V("op", op), goerr.V("phase", s.phase.String()), goerr.V("want", p.String()))
	}
	return nil
}

// IsWarning reports whether err is one of the recoverable workflow errors
// a presentation layer should show as a warning.
func IsWarning(err error) bool {
	for _, target := range []error{
		selection.ErrSelectionFull,
		selection.ErrUnknownTopic,
		assessment.ErrPrecondition,
		assessment.ErrRange,
		assessment.ErrInvalidEnum,
		assessment.ErrIndex,
		assessment.ErrUnknownField,
		assessment.ErrIO,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
