package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inspekt/internal/photo"
	"inspekt/internal/registry"
	"inspekt/internal/report"
	"inspekt/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func jpegFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func baseReport(t *testing.T) *report.Report {
	t.Helper()
	return &report.Report{
		Property:    registry.Property{ID: "P-001", Name: "Harbor Office Park", Address: "12 Quay Street"},
		Kind:        domain.KindFireSafety,
		CompletedAt: time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC),
		Assignee:    registry.Staff{ID: "U-001", Name: "Mara Lindqvist"},
		Answers:     map[string]bool{"Extinguishers charged": true, "Exit routes clear": false},
		NonConformities: []report.NonConformity{
			{Note: "blocked exit on floor 2", Severity: domain.SeverityHigh},
		},
	}
}

func TestRenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir, testLogger())

	rep := baseReport(t)
	rep.Photos = []photo.Photo{{Name: "site.jpg", Data: jpegFixture(t)}}

	path, err := r.Render(context.Background(), rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, rep.Filename()), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	propName, err := f.GetCellValue("Report", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Harbor Office Park", propName)
}

func TestRenderSkipsCorruptPhoto(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir, testLogger())

	rep := baseReport(t)
	rep.Photos = []photo.Photo{
		{Name: "broken.jpg", Data: []byte("definitely not a jpeg")},
		{Name: "good.jpg", Data: jpegFixture(t)},
	}

	_, err := r.Render(context.Background(), rep)
	assert.NoError(t, err)
}

func TestRenderPaginatesLongReports(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir, testLogger())

	rep := baseReport(t)
	rep.Answers = map[string]bool{}
	for i := 0; i < 100; i++ {
		rep.Answers[fmt.Sprintf("Checklist item %03d", i)] = true
	}

	path, err := r.Render(context.Background(), rep)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Greater(t, len(f.GetSheetList()), 1)
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExcelRenderer(t.TempDir(), testLogger())
	_, err := r.Render(ctx, baseReport(t))
	assert.Error(t, err)
}
