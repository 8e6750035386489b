package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/noticepilot/internal/artifact"
	"github.com/alexanderramin/noticepilot/internal/calendar"
	"github.com/alexanderramin/noticepilot/internal/logging"
	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/alexanderramin/noticepilot/internal/pdftext"
)

// loadAnalysis reads a saved analysis (.json) or analyzes a contract PDF.
func (a *App) loadAnalysis(ctx context.Context, path string, progress io.Writer) (notice.Analysis, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readAnalysisFile(path)
	}
	return a.analyzeContract(ctx, path, progress)
}

// analyzeContract extracts the PDF text and runs the extraction stage.
// Errors from the extraction stage come with the empty-valid analysis;
// errors reading the PDF come with nothing usable.
func (a *App) analyzeContract(ctx context.Context, path string, progress io.Writer) (notice.Analysis, error) {
	log := logging.FromContext(ctx)

	stop := a.spin(progress, "Extracting Project Details & Risks...")
	text, err := pdftext.ExtractFile(ctx, a.Extractor, path)
	if err != nil {
		stop()
		log.Warn("contract unreadable", "path", path, "error", err)
		return notice.Analysis{}, fmt.Errorf("reading contract: %w", err)
	}
	log.Debug("contract text extracted", "path", path, "chars", len(text))

	analysis, err := a.Analysis.Analyze(ctx, text)
	stop()
	if err != nil {
		log.Warn("contract analysis failed", "path", path, "error", err)
		return analysis, err
	}
	log.Debug("contract analyzed", "path", path, "clauses", len(analysis.Clauses))
	return analysis, nil
}

func readAnalysisFile(path string) (notice.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return notice.Analysis{}, fmt.Errorf("reading analysis: %w", err)
	}
	var a notice.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return notice.Analysis{}, fmt.Errorf("decoding analysis %s: %w", path, err)
	}
	if a.Clauses == nil {
		a.Clauses = []notice.Clause{}
	}
	return a, nil
}

// writeAnalysisFile saves a as indented JSON at path.
func writeAnalysisFile(path string, a notice.Analysis) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}
	art := artifact.Analysis(append(data, '\n'))
	art.Filename = filepath.Base(path)
	return artifact.Write(filepath.Dir(path), art)
}

// exportCalendar writes project_deadlines.ics for clauses into dir.
func (a *App) exportCalendar(clauses []notice.Clause, dir string) (string, []notice.DeadlineEvent, error) {
	now := a.now()
	events, err := calendar.Events(clauses, now)
	if err != nil {
		return "", nil, err
	}
	path, err := artifact.Write(dir, artifact.Calendar(a.Calendar.Render(events, now)))
	if err != nil {
		return "", nil, err
	}
	return path, events, nil
}
