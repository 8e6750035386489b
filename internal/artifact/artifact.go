// Package artifact writes the tool's downloadable outputs to disk.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/noticepilot/internal/calendar"
	"github.com/alexanderramin/noticepilot/internal/notice"
)

// ErrEmpty is returned when asked to write an artifact with no content.
var ErrEmpty = errors.New("artifact has no content")

const (
	letterContentType   = "text/plain"
	analysisContentType = "application/json"

	// AnalysisFilename is used by analyze --json when no path is given.
	AnalysisFilename = "analysis.json"
)

// Artifact is a named payload offered to the user.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Calendar wraps an iCalendar export.
func Calendar(data []byte) Artifact {
	return Artifact{Filename: calendar.Filename, ContentType: calendar.ContentType, Data: data}
}

// Letter wraps a notice draft as Notice_<clause_id>.txt.
func Letter(d notice.Draft) Artifact {
	return Artifact{
		Filename:    LetterFilename(d.ClauseID),
		ContentType: letterContentType,
		Data:        []byte(d.Text),
	}
}

// Analysis wraps a JSON-encoded analysis.
func Analysis(data []byte) Artifact {
	return Artifact{Filename: AnalysisFilename, ContentType: analysisContentType, Data: data}
}

var unsafeFilenameChars = strings.NewReplacer(
	"/", "_",
	`\`, "_",
	":", "_",
	"\x00", "",
)

// LetterFilename returns the letter name for a clause id. Path separators
// are replaced so the file always lands in the output directory.
func LetterFilename(clauseID string) string {
	id := strings.TrimSpace(unsafeFilenameChars.Replace(clauseID))
	if id == "" || id == "." || id == ".." {
		id = "clause"
	}
	return "Notice_" + id + ".txt"
}

// Write stores a in dir, creating dir if needed, and returns the full path.
// An existing file of the same name is replaced.
func Write(dir string, a Artifact) (string, error) {
	if len(a.Data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, a.Filename)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", a.Filename, err)
	}
	return path, nil
}
