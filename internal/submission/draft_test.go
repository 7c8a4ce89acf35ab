package submission

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspekt/internal/photo"
	"inspekt/pkg/domain"
)

func newDraft(t *testing.T) *Draft {
	t.Helper()
	svc, store, _ := newService(t, okRenderer())
	parent := seedParent(t, store)
	d, err := svc.Begin(context.Background(), parent.ID)
	require.NoError(t, err)
	return d
}

func pngUpload(t *testing.T, name string) photo.Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 220, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return photo.Upload{Name: name, Data: buf.Bytes()}
}

func TestDraftAnswersDefaultUnchecked(t *testing.T) {
	d := newDraft(t)
	assert.Empty(t, d.Answers())

	d.SetAnswer("Hydrant accessible", true)
	d.SetAnswer("Hydrant accessible", false)
	assert.Equal(t, map[string]bool{"Hydrant accessible": false}, d.Answers())
}

func TestDraftNonConformityLifecycle(t *testing.T) {
	d := newDraft(t)

	i := d.AddNonConformity()
	assert.Equal(t, 0, i)
	// New entries start with the mildest grade and no note.
	ncs := d.NonConformities()
	require.Len(t, ncs, 1)
	assert.Empty(t, ncs[0].Note)
	assert.Equal(t, domain.SeverityLow, ncs[0].Severity)

	require.NoError(t, d.UpdateNonConformity(0, "Pump leaking", domain.SeverityHigh))
	assert.Equal(t, "Pump leaking", d.NonConformities()[0].Note)

	assert.Error(t, d.UpdateNonConformity(3, "x", domain.SeverityLow))
	assert.Error(t, d.UpdateNonConformity(0, "x", domain.Severity("critical")))

	require.NoError(t, d.RemoveNonConformity(0))
	assert.Empty(t, d.NonConformities())
	assert.Error(t, d.RemoveNonConformity(0))
}

func TestDraftPhotoCapSilentlyDropsExtras(t *testing.T) {
	d := newDraft(t)
	ctx := context.Background()

	uploads := make([]photo.Upload, 0, MaxPhotos+2)
	for i := 0; i < MaxPhotos+2; i++ {
		uploads = append(uploads, pngUpload(t, fmt.Sprintf("site-%d.png", i)))
	}

	require.NoError(t, d.AttachPhotos(ctx, uploads))
	photos := d.Photos()
	require.Len(t, photos, MaxPhotos)
	assert.Equal(t, "site-0.png", photos[0].Name)
	assert.Equal(t, "site-5.png", photos[5].Name)

	// Already full: further uploads are dropped without error.
	require.NoError(t, d.AttachPhotos(ctx, []photo.Upload{pngUpload(t, "late.png")}))
	assert.Len(t, d.Photos(), MaxPhotos)
}

func TestDraftRejectsNonImageUpload(t *testing.T) {
	d := newDraft(t)

	err := d.AttachPhotos(context.Background(), []photo.Upload{{Name: "notes.txt", Data: []byte("hello")}})
	require.Error(t, err)
	// The failed batch attaches nothing; the draft stays editable.
	assert.Empty(t, d.Photos())
	assert.Equal(t, StateEditing, d.State())
}
