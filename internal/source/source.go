// Package source turns archive locations into byte streams. It deliberately
// stays thin: everything interesting happens downstream in the extractor.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Resolve opens the byte stream named by spec: "-" for stdin, s3:// and
// http(s):// URLs, and anything else as a local file path. The caller owns
// the returned stream.
func Resolve(ctx context.Context, spec string, s3cfg S3Config) (io.ReadCloser, error) {
	switch {
	case spec == "-":
		return Stdin()
	case strings.HasPrefix(spec, "s3://"):
		return OpenS3(ctx, spec, s3cfg)
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return OpenHTTP(ctx, spec)
	default:
		return OpenFile(spec)
	}
}

// OpenFile opens a local archive file.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return f, nil
}

// Stdin returns the process's standard input. It refuses an interactive
// terminal, where archive bytes cannot plausibly be arriving.
func Stdin() (io.ReadCloser, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("refusing to read archive data from an interactive terminal")
	}
	return io.NopCloser(os.Stdin), nil
}
