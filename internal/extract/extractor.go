package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Extractor materializes an archive's entries into a target directory. It
// exclusively owns its entry stream: Extract consumes the stream once and
// closes it before returning, so an Extractor cannot be reused for a second
// pass. Not safe for concurrent use.
type Extractor struct {
	in     Reader
	fs     afero.Fs
	logger *zap.Logger

	closeOnce sync.Once
}

type Option func(*Extractor)

// WithFs sets the filesystem that receives extracted entries.
func WithFs(fs afero.Fs) Option {
	return func(e *Extractor) {
		e.fs = fs
	}
}

// WithLogger sets the logger used for per-entry diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an extractor owning the given entry stream. By default it
// writes to the OS filesystem and logs nowhere.
func New(in Reader, opts ...Option) *Extractor {
	e := &Extractor{
		in:     in,
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open resolves a source through the registry and wraps the resulting entry
// stream in an extractor. On resolution failure the raw stream is already
// closed when the error returns.
func Open(registry *Registry, src Source, opts Options, extractorOpts ...Option) (*Extractor, error) {
	in, err := registry.Open(src, opts)
	if err != nil {
		return nil, err
	}
	return New(in, extractorOpts...), nil
}

// Extract writes every accepted entry below targetDir, stripping the first
// stripComponents path segments from each entry name. Entries whose name is
// fully consumed by stripping, entries rejected by the filter, and entries
// the container cannot decode are skipped. The entry stream is closed before
// Extract returns, whether it succeeds or not.
//
// Already-written files stay on disk when extraction fails partway; there is
// no rollback.
func (e *Extractor) Extract(targetDir string, stripComponents int, filter Filter) error {
	defer e.closeIn()

	if err := e.validate(targetDir, stripComponents); err != nil {
		return err
	}

	for {
		entry, err := e.in.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}

		if filter != nil && !filter(entry) {
			continue
		}
		if !entry.Readable {
			e.logger.Debug("skipping unreadable entry",
				zap.String("entry", entry.Name),
				zap.String("format", entry.Format))
			continue
		}

		name, ok := stripName(entry.Name, stripComponents)
		if !ok {
			continue
		}
		target := filepath.Join(targetDir, filepath.FromSlash(name))

		if entry.Dir {
			if err := e.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := e.writeFile(target, e.in); err != nil {
			return err
		}
		e.logger.Debug("extracted entry",
			zap.String("entry", entry.Name),
			zap.String("target", target),
			zap.Int64("size", entry.Size))
	}

	return nil
}

func (e *Extractor) validate(targetDir string, stripComponents int) error {
	if targetDir == "" {
		return &ValidationError{Field: "target directory", Reason: "must not be empty"}
	}
	if stripComponents < 0 {
		return &ValidationError{Field: "strip components", Reason: "must not be negative"}
	}
	info, err := e.fs.Stat(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat target directory: %w", err)
	}
	if !info.IsDir() {
		return &ValidationError{Field: "target directory", Reason: fmt.Sprintf("%s exists and is not a directory", targetDir)}
	}
	return nil
}

func (e *Extractor) writeFile(target string, data io.Reader) (err error) {
	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := e.fs.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err = io.Copy(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}

// Close releases the underlying entry stream. It is safe to call any number
// of times and never fails: errors from the underlying close are logged and
// swallowed.
func (e *Extractor) Close() error {
	e.closeIn()
	return nil
}

func (e *Extractor) closeIn() {
	e.closeOnce.Do(func() {
		if err := e.in.Close(); err != nil {
			e.logger.Debug("failed to close archive stream", zap.Error(err))
		}
	})
}
