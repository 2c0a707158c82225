package extract

import "strings"

// stripName removes the first n slash-delimited segments from an entry name,
// the way tar's --strip-components does. Empty segments (doubled or trailing
// slashes) do not count. It returns false when stripping consumes the whole
// name, in which case the entry produces no output at all.
func stripName(name string, n int) (string, bool) {
	if n <= 0 {
		return name, name != ""
	}

	segments := make([]string, 0, strings.Count(name, "/")+1)
	for _, s := range strings.Split(name, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) <= n {
		return "", false
	}
	return strings.Join(segments[n:], "/"), true
}
