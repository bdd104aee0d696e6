package assessment

import (
	"encoding/csv"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sustainlab/materiality/internal/catalog"
)

// utf8BOM lets spreadsheet tools detect UTF-8 when opening CJK columns.
const utf8BOM = "\uFEFF"

// FileName returns the export file name for respondent name with extension
// ext. Path separators in name are replaced so the file stays in its directory.
func FileName(name, ext string) string {
	safe := strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return "materiality-assessed-" + safe + "." + ext
}

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return goerr.Wrap(ErrIO, "export directory not accessible", goerr.V(PathKey, dir), goerr.V("cause", err.Error()))
	}
	if !info.IsDir() {
		return goerr.Wrap(ErrIO, "export path is not a directory", goerr.V(PathKey, dir))
	}
	return nil
}

// ToFile writes the rows as BOM-prefixed UTF-8 CSV to
// materiality-assessed-{name}.csv inside dir and returns the file path.
// An existing file is overwritten.
func (m *FormModel) ToFile(dir, name string) (path string, err error) {
	if err := CheckDir(dir); err != nil {
		return "", err
	}

	path = filepath.Join(dir, FileName(name, "csv"))
	// #nosec G304 - directory is chosen interactively by the user
	f, err := os.Create(path)
	if err != nil {
		return "", goerr.Wrap(ErrIO, "failed to create export file", goerr.V(PathKey, path), goerr.V("cause", err.Error()))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = goerr.Wrap(ErrIO, "failed to close export file", goerr.V(PathKey, path), goerr.V("cause", cerr.Error()))
		}
	}()

	if err := WriteCSV(f, m.ExportRows()); err != nil {
		return "", goerr.Wrap(ErrIO, "failed to write export file", goerr.V(PathKey, path), goerr.V("cause", err.Error()))
	}
	return path, nil
}

// WriteCSV writes the BOM, the header and one line per row to w.
func WriteCSV(w io.Writer, rows iter.Seq[Row]) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(catalog.Header()); err != nil {
		return err
	}
	for r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
