// Package testutil provides shared helpers for exercising the capability
// loader: log capture, instrumented importers, and manifest fixtures.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a debug-level text logger that writes
// into the returned SafeBuffer.
func Context() (context.Context, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// FakeImporter is an instrumented Importer: it serves handles or errors
// from fixed maps and counts every Import call per capability name.
type FakeImporter struct {
	mu      sync.Mutex
	Handles map[string]capability.Handle
	Errs    map[string]error
	calls   map[string]int
}

// Import implements the capability.Importer interface.
func (f *FakeImporter) Import(ctx context.Context, name string) (capability.Handle, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	f.mu.Unlock()

	if err, ok := f.Errs[name]; ok {
		return nil, err
	}
	if h, ok := f.Handles[name]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("no fixture for capability %q", name)
}

// Calls returns how many times Import was invoked for the given name.
func (f *FakeImporter) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// TotalCalls returns how many times Import was invoked in total.
func (f *FakeImporter) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// WriteManifests writes the given manifest sources into a fresh temp
// directory and returns its path. Keys are file names relative to the
// directory.
func WriteManifests(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// InteriorRGBA paints a canvas with pad, fills its central w x h window
// with fill, and returns that window as a sub-image. The view keeps the
// parent's wider stride and a non-zero origin, the layout that exposes
// offset bugs in pixel loops.
func InteriorRGBA(w, h int, fill, pad color.RGBA) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, w+4, h+4))
	for y := 0; y < h+4; y++ {
		for x := 0; x < w+4; x++ {
			base.SetRGBA(x, y, pad)
		}
	}
	view := base.SubImage(image.Rect(2, 2, 2+w, 2+h)).(*image.RGBA)
	vb := view.Bounds()
	for y := vb.Min.Y; y < vb.Max.Y; y++ {
		for x := vb.Min.X; x < vb.Max.X; x++ {
			view.SetRGBA(x, y, fill)
		}
	}
	return view
}

// InteriorGray is InteriorRGBA for single-channel images.
func InteriorGray(w, h int, fill, pad uint8) *image.Gray {
	base := image.NewGray(image.Rect(0, 0, w+4, h+4))
	for i := range base.Pix {
		base.Pix[i] = pad
	}
	view := base.SubImage(image.Rect(2, 2, 2+w, 2+h)).(*image.Gray)
	vb := view.Bounds()
	for y := vb.Min.Y; y < vb.Max.Y; y++ {
		for x := vb.Min.X; x < vb.Max.X; x++ {
			view.SetGray(x, y, color.Gray{Y: fill})
		}
	}
	return view
}

// WriteFakeLibrary creates an empty shared-library file the probe will
// find, e.g. WriteFakeLibrary(t, dir, "libfftw3.so").
func WriteFakeLibrary(t *testing.T, dir, fileName string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}
