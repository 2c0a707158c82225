package extract

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader is a scripted entry stream.
type fakeReader struct {
	entries []fakeEntry
	index   int
	cur     *strings.Reader
	closes  int
	nextErr error // returned instead of the entry at position failAt
	failAt  int
}

type fakeEntry struct {
	entry   Entry
	content string
}

func file(name, content string) fakeEntry {
	return fakeEntry{
		entry:   Entry{Name: name, Size: int64(len(content)), Format: "fake", Readable: true},
		content: content,
	}
}

func dir(name string) fakeEntry {
	return fakeEntry{entry: Entry{Name: name, Dir: true, Format: "fake", Readable: true}}
}

func unreadable(name string) fakeEntry {
	return fakeEntry{entry: Entry{Name: name, Format: "fake"}}
}

func (r *fakeReader) Next() (*Entry, error) {
	if r.nextErr != nil && r.index == r.failAt {
		return nil, r.nextErr
	}
	if r.index >= len(r.entries) {
		return nil, io.EOF
	}
	e := r.entries[r.index]
	r.index++
	r.cur = strings.NewReader(e.content)
	return &e.entry, nil
}

func (r *fakeReader) Read(p []byte) (int, error) {
	if r.cur == nil {
		return 0, io.EOF
	}
	return r.cur.Read(p)
}

func (r *fakeReader) Close() error {
	r.closes++
	return nil
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(content)
}

func TestExtractor_Extract(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{
		dir("docs/"),
		file("docs/readme.md", "# hello"),
		file("main.go", "package main"),
	}}
	fs := afero.NewMemMapFs()

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "# hello", readFile(t, fs, "/out/docs/readme.md"))
	assert.Equal(t, "package main", readFile(t, fs, "/out/main.go"))

	isDir, err := afero.IsDir(fs, "/out/docs")
	require.NoError(t, err)
	assert.True(t, isDir)

	assert.Equal(t, 1, in.closes, "stream should be closed exactly once")
}

func TestExtractor_StripComponents(t *testing.T) {
	tests := []struct {
		name      string
		strip     int
		wantFiles map[string]string
		wantDirs  []string
	}{
		{
			name:  "strip one",
			strip: 1,
			wantFiles: map[string]string{
				"/out/b.txt": "hi",
			},
			wantDirs: []string{"/out/c"},
		},
		{
			name:      "strip two consumes everything",
			strip:     2,
			wantFiles: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &fakeReader{entries: []fakeEntry{
				file("a/b.txt", "hi"),
				dir("a/c/"),
			}}
			fs := afero.NewMemMapFs()

			err := New(in, WithFs(fs)).Extract("/out", tt.strip, nil)
			require.NoError(t, err)

			for path, content := range tt.wantFiles {
				assert.Equal(t, content, readFile(t, fs, path))
			}
			for _, path := range tt.wantDirs {
				isDir, err := afero.IsDir(fs, path)
				require.NoError(t, err)
				assert.True(t, isDir, "expected directory %s", path)
			}
			if len(tt.wantFiles) == 0 && len(tt.wantDirs) == 0 {
				exists, err := afero.DirExists(fs, "/out")
				require.NoError(t, err)
				assert.False(t, exists, "nothing should have been written")
			}
		})
	}
}

func TestExtractor_Filter(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{
		file("keep.txt", "keep"),
		file("drop.bin", "drop"),
		file("also-keep.txt", "also"),
	}}
	fs := afero.NewMemMapFs()

	onlyTxt := func(e *Entry) bool { return strings.HasSuffix(e.Name, ".txt") }
	err := New(in, WithFs(fs)).Extract("/out", 0, onlyTxt)
	require.NoError(t, err)

	assert.Equal(t, "keep", readFile(t, fs, "/out/keep.txt"))
	assert.Equal(t, "also", readFile(t, fs, "/out/also-keep.txt"))

	exists, err := afero.Exists(fs, "/out/drop.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtractor_SkipsUnreadableEntries(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{
		file("before.txt", "before"),
		unreadable("weird.bin"),
		file("after.txt", "after"),
	}}
	fs := afero.NewMemMapFs()

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)
	require.NoError(t, err, "unreadable entries are recoverable")

	assert.Equal(t, "before", readFile(t, fs, "/out/before.txt"))
	assert.Equal(t, "after", readFile(t, fs, "/out/after.txt"))

	exists, err := afero.Exists(fs, "/out/weird.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtractor_TargetIsAFile(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{file("a.txt", "a")}}
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out", []byte("occupied"), 0644))

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, in.index, "no entry should be read after a validation failure")
	assert.Equal(t, 1, in.closes, "stream is still closed on the validation path")
}

func TestExtractor_NegativeStripComponents(t *testing.T) {
	in := &fakeReader{}

	err := New(in, WithFs(afero.NewMemMapFs())).Extract("/out", -1, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestExtractor_EmptyTarget(t *testing.T) {
	in := &fakeReader{}

	err := New(in, WithFs(afero.NewMemMapFs())).Extract("", 0, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestExtractor_ExistingTargetDirIsFine(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{file("a.txt", "a")}}
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0755))

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", readFile(t, fs, "/out/a.txt"))
}

func TestExtractor_ReadErrorAbortsAndCloses(t *testing.T) {
	readErr := errors.New("truncated archive")
	in := &fakeReader{
		entries: []fakeEntry{file("first.txt", "first"), file("second.txt", "second")},
		nextErr: readErr,
		failAt:  1,
	}
	fs := afero.NewMemMapFs()

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)
	require.ErrorIs(t, err, readErr)

	assert.Equal(t, "first", readFile(t, fs, "/out/first.txt"), "entries written before the failure stay on disk")
	assert.Equal(t, 1, in.closes)
}

func TestExtractor_WriteErrorAborts(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{file("a.txt", "a")}}
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := New(in, WithFs(fs)).Extract("/out", 0, nil)
	require.Error(t, err)
	assert.Equal(t, 1, in.closes)
}

func TestExtractor_CloseIsIdempotent(t *testing.T) {
	in := &fakeReader{}
	e := New(in)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.Equal(t, 1, in.closes)
}

func TestExtractor_ExtractThenCloseClosesOnce(t *testing.T) {
	in := &fakeReader{entries: []fakeEntry{file("a.txt", "a")}}

	e := New(in, WithFs(afero.NewMemMapFs()))
	require.NoError(t, e.Extract("/out", 0, nil))
	require.NoError(t, e.Close())

	assert.Equal(t, 1, in.closes)
}
