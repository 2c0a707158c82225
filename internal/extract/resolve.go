package extract

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"strings"
)

// sniffLen is what auto-detection peeks at: one tar header block, which is
// also more than enough for every magic-number probe.
const sniffLen = 512

// Source is the construction-boundary input: either raw bytes still to be
// decoded, or an entry stream the caller already decoded.
type Source struct {
	raw     io.Reader
	decoded Reader
}

// Stream wraps a raw byte stream to be format-detected and decoded. If the
// reader is also an io.Closer, ownership of it transfers to the resulting
// Reader.
func Stream(r io.Reader) Source {
	return Source{raw: r}
}

// Decoded wraps an entry stream the caller built themselves. It is used
// as-is: no buffering, no detection, no extra decode stack.
func Decoded(r Reader) Source {
	return Source{decoded: r}
}

// Open resolves a source into an entry stream.
//
// Raw streams are buffered for probing, then dispatched: with no format hint
// the leading bytes are sniffed against the registered sniffers; the hints
// "tgz" and "tar.gz" (case-insensitive) compose a gzip decoder with the tar
// format directly, since the registry has no notion of compressed-then-
// archived pairings; any other hint is looked up by name. If building the
// decode stack fails after the raw stream was wrapped, the raw stream is
// closed before the error is returned.
func (r *Registry) Open(src Source, opts Options) (Reader, error) {
	if src.decoded != nil {
		return src.decoded, nil
	}
	if src.raw == nil {
		return nil, &ValidationError{Field: "source", Reason: "no input stream"}
	}

	br := bufio.NewReaderSize(src.raw, sniffLen)

	var (
		ar     Reader
		err    error
		format string
		extras []io.Closer
	)

	switch name := strings.ToLower(strings.TrimSpace(opts.Format)); name {
	case "":
		format, ar, err = r.sniffOpen(br, opts)
	case "tgz", "tar.gz":
		format = name
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(br); err == nil {
			extras = append(extras, gz)
			ar, err = r.Create("tar", gz, opts)
		}
	default:
		format = name
		ar, err = r.Create(name, br, opts)
	}

	if err != nil {
		closeStream(src.raw)
		var unsupported *UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		return nil, &FormatError{Format: format, Err: err}
	}

	if c, ok := src.raw.(io.Closer); ok {
		extras = append(extras, c)
	}
	if len(extras) > 0 {
		ar = &chainReader{Reader: ar, extras: extras}
	}
	return ar, nil
}

func (r *Registry) sniffOpen(br *bufio.Reader, opts Options) (string, Reader, error) {
	leading, _ := br.Peek(sniffLen)
	if len(leading) == 0 {
		return "", nil, ErrFormatUnrecognized
	}
	sniffer, ok := r.Sniff(leading)
	if !ok {
		return "", nil, ErrFormatUnrecognized
	}
	ar, err := sniffer.Factory(br, opts)
	return sniffer.Name, ar, err
}

func closeStream(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

// chainReader closes the decode stack and the raw stream after the inner
// Reader, innermost first.
type chainReader struct {
	Reader
	extras []io.Closer
}

func (c *chainReader) Close() error {
	err := c.Reader.Close()
	for _, extra := range c.extras {
		err = errors.Join(err, extra.Close())
	}
	return err
}
