// Package session runs image commands against a named-image store.
//
// A Session loads files into the store, applies operations between stored
// names and saves results back to disk. It also executes the line-oriented
// script language used by the run and shell commands (see Exec).
//
// The session remembers the last image it produced. Commands that omit
// their source operate on that image, and omitted destinations get a
// generated name of the form "<source>-<op>-<id>".
package session

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/ops"
	"github.com/ironsheep/grime/internal/store"
)

// Options configures a Session. Zero values select defaults.
type Options struct {
	// Codec reads and writes files. Nil uses a zero Codec.
	Codec *codec.Codec
	// Logger receives operation logs. Nil discards them.
	Logger *log.Logger
	// Output receives help text. Nil discards it.
	Output io.Writer
	// MosaicSeed seeds the mosaic PRNG. Zero means imaging.DefaultMosaicSeed.
	MosaicSeed uint64
	// DefaultSeeds is the mosaic seed count when a caller gives none.
	DefaultSeeds int
}

// Session is an orchestration context over a Store.
type Session struct {
	store  store.Store
	codec  *codec.Codec
	logger *log.Logger
	out    io.Writer

	mosaicSeed   uint64
	defaultSeeds int

	mu      sync.Mutex
	last    string
	running map[string]bool
}

// New creates a session over st.
func New(st store.Store, opts Options) *Session {
	s := &Session{
		store:        st,
		codec:        opts.Codec,
		logger:       opts.Logger,
		out:          opts.Output,
		mosaicSeed:   opts.MosaicSeed,
		defaultSeeds: opts.DefaultSeeds,
		running:      make(map[string]bool),
	}
	if s.codec == nil {
		s.codec = &codec.Codec{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.mosaicSeed == 0 {
		s.mosaicSeed = imaging.DefaultMosaicSeed
	}
	if s.defaultSeeds <= 0 {
		s.defaultSeeds = 1000
	}
	return s
}

// Store returns the backing store.
func (s *Session) Store() store.Store { return s.store }

// Codec returns the codec used for files.
func (s *Session) Codec() *codec.Codec { return s.codec }

// Last returns the name of the most recently loaded or produced image, or
// "" if there is none.
func (s *Session) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) setLast(name string) {
	s.mu.Lock()
	s.last = name
	s.mu.Unlock()
}

// DefaultSeeds returns the mosaic seed count used when none is given.
func (s *Session) DefaultSeeds() int { return s.defaultSeeds }

// Load reads the image at path into the store under name and returns the
// name used. An empty name is derived from the file name.
func (s *Session) Load(ctx context.Context, path, name string) (string, error) {
	start := time.Now()
	img, err := s.codec.LoadFile(path)
	if err != nil {
		return "", err
	}
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := s.store.Put(ctx, name, img); err != nil {
		return "", err
	}
	s.setLast(name)
	s.logger.Info("loaded image", "name", name, "path", path,
		"width", img.Width(), "height", img.Height(), "elapsed", since(start))
	return name, nil
}

// Save writes the image stored under name to path. The extension of path
// selects the format. An empty name saves the last image.
func (s *Session) Save(ctx context.Context, path, name string) (string, error) {
	if name == "" {
		name = s.Last()
		if name == "" {
			return "", errors.New(errors.ErrCodeInvalidArgument, "no image to save")
		}
	}
	img, err := s.store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	start := time.Now()
	if err := s.codec.SaveFile(img, path); err != nil {
		return "", err
	}
	s.logger.Info("saved image", "name", name, "path", path, "elapsed", since(start))
	return name, nil
}

// Image returns the stored image called name.
func (s *Session) Image(ctx context.Context, name string) (*imaging.Image, error) {
	return s.store.Get(ctx, name)
}

// Names lists stored images.
func (s *Session) Names(ctx context.Context) ([]string, error) {
	return s.store.Names(ctx)
}

// Delete removes a stored image.
func (s *Session) Delete(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	if s.last == name {
		s.last = ""
	}
	s.mu.Unlock()
	s.logger.Debug("deleted image", "name", name)
	return nil
}

// Apply runs op on the images stored under sources and stores each result
// under the matching name in dests. Missing destinations are generated.
// It returns the destination names in result order.
//
// # Errors
//
//   - NOT_FOUND if a source is not stored
//   - INVALID_ARGUMENT if more destinations than results are given
//   - any error of ops.Apply
func (s *Session) Apply(ctx context.Context, op ops.Op, sources, dests []string, args ops.Args) ([]string, error) {
	if len(dests) > op.Outputs() {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"%s produces %d image(s), got %d destinations", op, op.Outputs(), len(dests))
	}
	if len(sources) != op.Inputs() {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"%s needs %d source image(s), got %d", op, op.Inputs(), len(sources))
	}

	images := make([]*imaging.Image, len(sources))
	for i, name := range sources {
		img, err := s.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}

	if op == ops.Mosaic && args.MosaicSeed == 0 {
		args.MosaicSeed = s.mosaicSeed
	}

	start := time.Now()
	results, err := ops.Apply(op, images, args)
	if err != nil {
		return nil, err
	}
	elapsed := since(start)

	names := make([]string, len(results))
	for i, img := range results {
		if i < len(dests) && dests[i] != "" {
			names[i] = dests[i]
		} else {
			names[i] = autoName(sources[0], op, i)
		}
		if err := s.store.Put(ctx, names[i], img); err != nil {
			return nil, err
		}
	}
	s.setLast(names[len(names)-1])

	s.logger.Debug("applied operation", "op", op, "sources", sources, "dests", names, "elapsed", elapsed)
	return names, nil
}

var splitSuffixes = [3]string{"red", "green", "blue"}

// autoName derives a fresh destination name from the first source.
func autoName(source string, op ops.Op, index int) string {
	id := uuid.NewString()[:8]
	if op == ops.Split {
		return fmt.Sprintf("%s-%s-%s", source, splitSuffixes[index], id)
	}
	return fmt.Sprintf("%s-%s-%s", source, op, id)
}

func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
