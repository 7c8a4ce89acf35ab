// Package render writes report snapshots to spreadsheet files for download
// and archival.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"inspekt/internal/report"
)

// rowsPerSheet is the pagination threshold: when a sheet fills up, content
// continues on a numbered follow-up sheet.
const rowsPerSheet = 40

// photoRowSpan reserves vertical room for one embedded image.
const photoRowSpan = 16

// ExcelRenderer renders reports as .xlsx files under a fixed directory.
type ExcelRenderer struct {
	dir    string
	logger *slog.Logger
}

// NewExcelRenderer creates a renderer writing into dir.
func NewExcelRenderer(dir string, logger *slog.Logger) *ExcelRenderer {
	return &ExcelRenderer{dir: dir, logger: logger}
}

// Render writes the report and returns the saved file path. A single photo
// that cannot be embedded is skipped with a warning; only file-level
// failures abort the render.
func (r *ExcelRenderer) Render(ctx context.Context, rep *report.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	w := newSheetWriter(f)

	w.writeRow("Inspection report", "")
	w.writeRow("Property", rep.Property.Name)
	w.writeRow("Address", rep.Property.Address)
	w.writeRow("Inspection", rep.Kind.Label())
	w.writeRow("Completed", rep.CompletedAt.Format("2006-01-02 15:04"))
	w.writeRow("Assignee", rep.Assignee.Name)
	w.writeRow("", "")

	w.writeRow("Checklist", "")
	for _, item := range sortedItems(rep.Answers) {
		answer := "no"
		if rep.Answers[item] {
			answer = "yes"
		}
		w.writeRow(item, answer)
	}
	w.writeRow("", "")

	w.writeRow("Non-conformities", "")
	if len(rep.NonConformities) == 0 {
		w.writeRow("none", "")
	}
	for _, nc := range rep.NonConformities {
		w.writeRow(nc.Note, string(nc.Severity))
	}
	w.writeRow("", "")

	w.writeRow("Photo evidence", "")
	for _, p := range rep.Photos {
		if err := w.embedPhoto(p.Name, p.Data); err != nil {
			// A corrupt image degrades the report, it does not abort
			// the submission.
			r.logger.Warn("skipping unembeddable photo", "photo", p.Name, "error", err)
		}
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(r.dir, rep.Filename())
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

// sheetWriter appends rows and spills onto continuation sheets past the
// pagination threshold.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	page  int
	row   int
}

func newSheetWriter(f *excelize.File) *sheetWriter {
	const first = "Report"
	_ = f.SetSheetName(f.GetSheetName(0), first)
	return &sheetWriter{f: f, sheet: first, page: 1, row: 1}
}

func (w *sheetWriter) writeRow(label, value string) {
	w.ensureRoom(1)
	_ = w.f.SetCellValue(w.sheet, fmt.Sprintf("A%d", w.row), label)
	if value != "" {
		_ = w.f.SetCellValue(w.sheet, fmt.Sprintf("B%d", w.row), value)
	}
	w.row++
}

func (w *sheetWriter) embedPhoto(name string, data []byte) error {
	w.ensureRoom(photoRowSpan)
	cell := fmt.Sprintf("A%d", w.row)
	err := w.f.AddPictureFromBytes(w.sheet, cell, &excelize.Picture{
		Extension: ".jpg",
		File:      data,
		Format:    &excelize.GraphicOptions{AutoFit: true},
	})
	if err != nil {
		return err
	}
	_ = w.f.SetCellValue(w.sheet, fmt.Sprintf("B%d", w.row), name)
	w.row += photoRowSpan
	return nil
}

// ensureRoom starts a continuation sheet when span rows would cross the
// page threshold.
func (w *sheetWriter) ensureRoom(span int) {
	if w.row+span <= rowsPerSheet {
		return
	}
	w.page++
	w.sheet = fmt.Sprintf("Report (%d)", w.page)
	_, _ = w.f.NewSheet(w.sheet)
	w.row = 1
}

func sortedItems(answers map[string]bool) []string {
	items := make([]string, 0, len(answers))
	for item := range answers {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
