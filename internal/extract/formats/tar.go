package formats

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/adrien-f/unpack/internal/extract"
)

const (
	TarFormat      = "tar"
	TarGzFormat    = "tar.gz"
	TarZstdFormat  = "tar.zst"
	TarXzFormat    = "tar.xz"
	TarBzip2Format = "tar.bz2"
)

// tarReader adapts archive/tar to the entry stream contract. The closers
// hold whatever decompressors sit between the tar demuxer and the raw
// stream.
type tarReader struct {
	tr      *tar.Reader
	format  string
	opts    extract.Options
	closers []io.Closer
}

// NewTar demuxes an uncompressed tar stream.
func NewTar(r io.Reader, opts extract.Options) (extract.Reader, error) {
	return &tarReader{tr: tar.NewReader(r), format: TarFormat, opts: opts}, nil
}

// NewTarGz decompresses gzip, then demuxes tar.
func NewTarGz(r io.Reader, opts extract.Options) (extract.Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &tarReader{
		tr:      tar.NewReader(gz),
		format:  TarGzFormat,
		opts:    opts,
		closers: []io.Closer{gz},
	}, nil
}

// NewTarZstd decompresses zstd, then demuxes tar.
func NewTarZstd(r io.Reader, opts extract.Options) (extract.Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &tarReader{
		tr:      tar.NewReader(zr),
		format:  TarZstdFormat,
		opts:    opts,
		closers: []io.Closer{closerFunc(func() error { zr.Close(); return nil })},
	}, nil
}

// NewTarXz decompresses xz, then demuxes tar.
func NewTarXz(r io.Reader, opts extract.Options) (extract.Reader, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz: %w", err)
	}
	return &tarReader{tr: tar.NewReader(xr), format: TarXzFormat, opts: opts}, nil
}

// NewTarBzip2 decompresses bzip2, then demuxes tar.
func NewTarBzip2(r io.Reader, opts extract.Options) (extract.Reader, error) {
	return &tarReader{tr: tar.NewReader(bzip2.NewReader(r)), format: TarBzip2Format, opts: opts}, nil
}

func (r *tarReader) Next() (*extract.Entry, error) {
	hdr, err := r.tr.Next()
	if err != nil {
		return nil, err
	}
	return &extract.Entry{
		Name:     r.opts.DecodeName(hdr.Name),
		Dir:      hdr.Typeflag == tar.TypeDir,
		Size:     hdr.Size,
		Format:   r.format,
		Readable: readableTarEntry(hdr),
	}, nil
}

// readableTarEntry reports whether an entry holds content this extractor can
// materialize. Links and special files carry no extractable byte stream.
func readableTarEntry(hdr *tar.Header) bool {
	switch hdr.Typeflag {
	case tar.TypeReg, tar.TypeDir:
		return true
	default:
		return false
	}
}

func (r *tarReader) Read(p []byte) (int, error) {
	return r.tr.Read(p)
}

func (r *tarReader) Close() error {
	var err error
	for _, c := range r.closers {
		err = errors.Join(err, c.Close())
	}
	return err
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
