package render

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/tkukec/arcus-grid/internal/fsutil"
	"github.com/tkukec/arcus-grid/internal/monitoring"
	"github.com/tkukec/arcus-grid/internal/point"
	"github.com/tkukec/arcus-grid/internal/security"
	"github.com/tkukec/arcus-grid/internal/viewer"
)

// DefaultRoot is the directory rendered images are written under.
const DefaultRoot = "generated"

// PreviewSuffix replaces the extension of a rendered file to name its preview.
const PreviewSuffix = ".preview.png"

// ErrUnwritableOutput means a rendered file could not be persisted.
var ErrUnwritableOutput = errors.New("unwritable output")

// Viewer displays a written image. It is expected to block until the user
// closes it.
type Viewer interface {
	Show(path string) error
}

// Renderer paints point sequences and persists them under a root directory.
type Renderer struct {
	fs           fsutil.FileSystem
	root         string
	viewer       Viewer
	previewScale int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPreview also writes an enlarged, labelled preview next to every
// image. scale is the pixel edge of one cell in the embedded raster.
func WithPreview(scale int) Option {
	return func(r *Renderer) { r.previewScale = scale }
}

// NewRenderer creates a renderer writing under root. viewer may be nil when
// images are never shown.
func NewRenderer(fsys fsutil.FileSystem, root string, v Viewer, opts ...Option) *Renderer {
	if root == "" {
		root = DefaultRoot
	}
	r := &Renderer{fs: fsys, root: root, viewer: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render paints points onto a fresh canvas, writes it to root/name and,
// when show is set, opens it in the viewer. It returns the written path.
func (r *Renderer) Render(points []point.Point, show bool, name string) (string, error) {
	c := NewCanvas()
	c.Paint(points)

	path, err := r.WriteFile(name, func(w io.Writer) error {
		return png.Encode(w, c.Image())
	})
	if err != nil {
		return "", err
	}
	monitoring.Debugf("rendered %s from %d points", path, len(points))

	if r.previewScale > 0 {
		previewName := strings.TrimSuffix(name, filepath.Ext(name)) + PreviewSuffix
		title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		if _, err := r.WriteFile(previewName, func(w io.Writer) error {
			return writePreview(w, c, title, r.previewScale)
		}); err != nil {
			return "", err
		}
	}

	if show {
		if r.viewer == nil {
			return "", fmt.Errorf("%w: no viewer configured for %s", viewer.ErrLaunch, path)
		}
		if err := r.viewer.Show(path); err != nil {
			return "", err
		}
	}
	return path, nil
}

// WriteFile creates root/name, creating parent directories as needed, and
// fills it with encode. The name must stay within root.
func (r *Renderer) WriteFile(name string, encode func(io.Writer) error) (string, error) {
	path, err := security.JoinWithin(r.root, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}

	if err := r.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: create dir for %s: %v", ErrUnwritableOutput, path, err)
	}

	w, err := r.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnwritableOutput, err)
	}
	if err := encode(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: encode %s: %v", ErrUnwritableOutput, path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ErrUnwritableOutput, path, err)
	}
	return path, nil
}
