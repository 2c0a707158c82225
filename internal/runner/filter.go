package runner

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/adrien-f/unpack/internal/extract"
)

// GlobFilter builds an entry filter from include and exclude globs. Globs
// use path.Match syntax against the slash-trimmed entry name and, since
// path.Match's * never crosses a slash, also against its base name — so
// "*.tmp" excludes site/notes.tmp the way tar's --exclude does. With no
// globs at all it returns nil, the accept-everything filter.
func GlobFilter(include, exclude []string) extract.Filter {
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}

	return func(e *extract.Entry) bool {
		name := strings.Trim(e.Name, "/")
		for _, glob := range exclude {
			if matchGlob(glob, name) {
				return false
			}
		}
		if len(include) == 0 {
			return true
		}
		for _, glob := range include {
			if matchGlob(glob, name) {
				return true
			}
		}
		return false
	}
}

func matchGlob(glob, name string) bool {
	if ok, _ := path.Match(glob, name); ok {
		return true
	}
	ok, _ := path.Match(glob, path.Base(name))
	return ok
}

// EncodingByName resolves a character set name ("GBK", "ISO8859-1") to an
// encoding for entry-name decoding. Strict IANA names are tried first, then
// the WHATWG labels, which accept the sloppy spellings ("iso8859-1",
// "latin1") people actually write in manifests. Empty means UTF-8 as-is.
func EncodingByName(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}
