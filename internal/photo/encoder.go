// Package photo turns raw uploaded files into normalized evidence images
// ready for inline embedding in reports.
package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Photo is one piece of encoded photo evidence. Data is JPEG bytes; JSON
// marshalling base64-encodes it for inline transport.
type Photo struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// maxEdge bounds the longer image edge after normalization. Uploads from
// phone cameras are far larger than a report cell needs.
const maxEdge = 1280

const jpegQuality = 80

// Encoder normalizes uploaded images: decode, downscale, re-encode JPEG.
type Encoder struct{}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode converts one raw upload. Non-image data is rejected with an
// error; callers decide whether that aborts or skips.
func (e *Encoder) Encode(name string, data []byte) (Photo, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Photo{}, fmt.Errorf("decode image %q: %w", name, err)
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Photo{}, fmt.Errorf("encode image %q: %w", name, err)
	}
	return Photo{Name: name, Data: buf.Bytes()}, nil
}

// Upload is one raw file handed to EncodeAll.
type Upload struct {
	Name string
	Data []byte
}

// EncodeAll encodes the uploads concurrently while preserving their order.
// All encodes must finish before the result is returned; one bad file
// fails the whole batch so the caller can surface it while still editing.
func (e *Encoder) EncodeAll(ctx context.Context, uploads []Upload) ([]Photo, error) {
	out := make([]Photo, len(uploads))
	g, _ := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			p, err := e.Encode(up.Name, up.Data)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxEdge && b.Dy() <= maxEdge {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxEdge, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxEdge, imaging.Lanczos)
}
