package extract

import (
	"io"

	"golang.org/x/text/encoding"
)

// Reader is a forward-only stream of decoded archive entries. Entries are
// visited once, in archive order: Next advances to the next entry and Read
// returns the bytes of the entry Next last returned. A Reader is exclusively
// owned by whoever constructed it and is not safe for concurrent use.
type Reader interface {
	// Next advances to the next entry in the archive. It returns io.EOF
	// when the archive is exhausted.
	Next() (*Entry, error)

	// Read reads the decoded content of the current entry.
	io.Reader

	io.Closer
}

// Entry describes one item in an archive. Entries are transient: the fields
// stay valid only until the next call to Reader.Next.
type Entry struct {
	// Name is the slash-separated path of the entry inside the archive.
	Name string

	// Dir reports whether the entry is a directory.
	Dir bool

	// Size is the decoded size of the entry's content in bytes.
	Size int64

	// Format names the archive format that produced the entry.
	Format string

	// Readable reports whether the entry's content can be decoded. Entries
	// stored with a container variant this build does not support (an
	// exotic zip compression method, a tar special file) are surfaced with
	// Readable set to false so callers can skip them and keep going.
	Readable bool
}

// Filter decides whether an entry is materialized during extraction.
// A nil Filter accepts every readable entry.
type Filter func(*Entry) bool

// Options carries the construction parameters shared by format factories.
type Options struct {
	// Format is an optional format name. Empty means auto-detect.
	Format string

	// Encoding decodes entry names that are not UTF-8. Nil leaves names
	// untouched.
	Encoding encoding.Encoding
}

// DecodeName decodes a raw entry name using the configured encoding. Names
// pass through unchanged when no encoding is set or decoding fails.
func (o Options) DecodeName(name string) string {
	if o.Encoding == nil {
		return name
	}
	decoded, err := o.Encoding.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}
