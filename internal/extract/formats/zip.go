package formats

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrien-f/unpack/internal/extract"
)

const ZipFormat = "zip"

// zipReader presents a zip archive as a forward-only entry stream. Zip needs
// random access to its central directory, so the input stream is spooled
// into memory first; entries are then visited in directory order.
type zipReader struct {
	zr    *zip.Reader
	opts  extract.Options
	index int
	cur   io.ReadCloser
}

// NewZip buffers the stream and opens it as a zip archive.
func NewZip(r io.Reader, opts extract.Options) (extract.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer zip stream: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}
	return &zipReader{zr: zr, opts: opts, index: -1}, nil
}

func (r *zipReader) Next() (*extract.Entry, error) {
	if r.cur != nil {
		_ = r.cur.Close()
		r.cur = nil
	}

	r.index++
	if r.index >= len(r.zr.File) {
		return nil, io.EOF
	}
	f := r.zr.File[r.index]

	name := f.Name
	if f.NonUTF8 {
		name = r.opts.DecodeName(name)
	}

	entry := &extract.Entry{
		Name:     name,
		Dir:      f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/"),
		Size:     int64(f.UncompressedSize64),
		Format:   ZipFormat,
		Readable: readableZipEntry(f),
	}

	if entry.Readable && !entry.Dir {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip entry %s: %w", f.Name, err)
		}
		r.cur = rc
	}

	return entry, nil
}

// readableZipEntry reports whether the entry uses a compression method this
// build can decode. archive/zip only ships Store and Deflate.
func readableZipEntry(f *zip.File) bool {
	switch f.Method {
	case zip.Store, zip.Deflate:
		return true
	default:
		return false
	}
}

func (r *zipReader) Read(p []byte) (int, error) {
	if r.cur == nil {
		return 0, io.EOF
	}
	return r.cur.Read(p)
}

func (r *zipReader) Close() error {
	if r.cur != nil {
		err := r.cur.Close()
		r.cur = nil
		return err
	}
	return nil
}
