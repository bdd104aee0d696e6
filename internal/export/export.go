// Package export writes a completed assessment in one or more file formats.
package export

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sustainlab/materiality/internal/assessment"
)

// ErrUnknownFormat is returned for a format name with no registered writer.
var ErrUnknownFormat = goerr.New("unknown export format")

// Writer writes a form into dir for the named respondent and returns the
// written path. Failures wrap assessment.ErrIO.
type Writer interface {
	Format() string
	Write(form *assessment.FormModel, dir, name string) (string, error)
}

var registry = map[string]Writer{
	"csv":  CSV{},
	"xlsx": XLSX{},
}

// Formats returns the registered format names.
func Formats() []string {
	return []string{"csv", "xlsx"}
}

// Lookup returns the writer for a format name (case-insensitive).
func Lookup(format string) (Writer, error) {
	w, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownFormat, "no writer for format", goerr.V("format", format))
	}
	return w, nil
}

// Writers resolves a list of format names, dropping repeats.
func Writers(formats []string) ([]Writer, error) {
	seen := make(map[string]bool, len(formats))
	out := make([]Writer, 0, len(formats))
	for _, f := range formats {
		w, err := Lookup(f)
		if err != nil {
			return nil, err
		}
		if seen[w.Format()] {
			continue
		}
		seen[w.Format()] = true
		out = append(out, w)
	}
	return out, nil
}

// CSV writes the canonical comma-separated export.
type CSV struct{}

func (CSV) Format() string { return "csv" }

func (CSV) Write(form *assessment.FormModel, dir, name string) (string, error) {
	return form.ToFile(dir, name)
}
