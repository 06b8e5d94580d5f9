package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/ops"
	"github.com/ironsheep/grime/internal/store"
)

// koalaPPM is a 3x2 color image.
const koalaPPM = `P3
# tiny koala
3 2
255
10 20 30 40 50 60 70 80 90
200 100 0 0 0 0 255 255 255
`

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "koala.ppm"), []byte(koalaPPM), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return New(store.NewMemoryStore(), Options{}), dir
}

func mustGet(t *testing.T, s *Session, name string) *imaging.Image {
	t.Helper()
	img, err := s.Image(context.Background(), name)
	if err != nil {
		t.Fatalf("Image(%q) failed: %v", name, err)
	}
	return img
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestSession(t)

	name, err := s.Load(ctx, filepath.Join(dir, "koala.ppm"), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if name != "koala" {
		t.Errorf("derived name: got %q, want koala", name)
	}
	if s.Last() != "koala" {
		t.Errorf("Last: got %q", s.Last())
	}

	out := filepath.Join(dir, "copy.png")
	if _, err := s.Save(ctx, out, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := s.Load(ctx, out, "copy"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !mustGet(t, s, "copy").Equal(mustGet(t, s, "koala")) {
		t.Error("PNG copy differs from the original")
	}
}

func TestSave_Errors(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestSession(t)

	if _, err := s.Save(ctx, filepath.Join(dir, "x.ppm"), ""); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("nothing loaded: got %v, want INVALID_ARGUMENT", err)
	}
	if _, err := s.Save(ctx, filepath.Join(dir, "x.ppm"), "ghost"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown name: got %v, want NOT_FOUND", err)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestSession(t)
	if _, err := s.Load(ctx, filepath.Join(dir, "koala.ppm"), "koala"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	names, err := s.Apply(ctx, ops.Brighten, []string{"koala"}, []string{"bright"}, ops.Args{Delta: 10})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(names) != 1 || names[0] != "bright" {
		t.Fatalf("names: got %v", names)
	}
	want := mustGet(t, s, "koala").Brighten(10)
	if !mustGet(t, s, "bright").Equal(want) {
		t.Error("stored result differs from Brighten(10)")
	}

	names, err = s.Apply(ctx, ops.Split, []string{"koala"}, []string{"r"}, ops.Args{})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(names) != 3 || names[0] != "r" {
		t.Fatalf("split names: got %v", names)
	}
	if !strings.HasPrefix(names[1], "koala-green-") || !strings.HasPrefix(names[2], "koala-blue-") {
		t.Errorf("generated names: got %v", names[1:])
	}
	if s.Last() != names[2] {
		t.Errorf("Last: got %q, want %q", s.Last(), names[2])
	}
}

func TestApply_Errors(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestSession(t)
	if _, err := s.Load(ctx, filepath.Join(dir, "koala.ppm"), "koala"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name    string
		op      ops.Op
		sources []string
		dests   []string
		code    errors.Code
	}{
		{"missing source", ops.Blur, []string{"ghost"}, nil, errors.ErrCodeNotFound},
		{"too many dests", ops.Blur, []string{"koala"}, []string{"a", "b"}, errors.ErrCodeInvalidArgument},
		{"wrong source count", ops.Combine, []string{"koala"}, nil, errors.ErrCodeInvalidArgument},
		{"mosaic without seeds", ops.Mosaic, []string{"koala"}, nil, errors.ErrCodeInvalidSeedCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Apply(ctx, tt.op, tt.sources, tt.dests, ops.Args{})
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApply_LogsAtDebug(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	dir := t.TempDir()
	path := filepath.Join(dir, "koala.ppm")
	if err := os.WriteFile(path, []byte(koalaPPM), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(store.NewMemoryStore(), Options{Logger: logger})
	if _, err := s.Load(ctx, path, "koala"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := s.Apply(ctx, ops.Sepia, []string{"koala"}, []string{"old"}, ops.Args{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"loaded image", "applied operation", "op=sepia", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestSession(t)
	if _, err := s.Load(ctx, filepath.Join(dir, "koala.ppm"), "koala"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Delete(ctx, "koala"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Last() != "" {
		t.Errorf("Last after delete: got %q", s.Last())
	}
	names, err := s.Names(ctx)
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Names: got %v", names)
	}
	if err := s.Delete(ctx, "koala"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second delete: got %v, want NOT_FOUND", err)
	}
}
