package formats

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrien-f/unpack/internal/extract"
)

func TestRegister_SnifferNamesAreFormats(t *testing.T) {
	reg := NewRegistry()
	available := reg.AvailableFormats()

	// Every name the registry reports from auto-detection must also work
	// as an explicit format name.
	for _, name := range reg.SnifferNames() {
		assert.Contains(t, available, name)
	}
}

func TestRegister_CreateCompressedByName(t *testing.T) {
	tarData := buildTar(t, []tarEntry{{name: "x.txt", content: "payload"}})
	reg := NewRegistry()

	tests := []struct {
		format string
		algo   string
	}{
		{format: TarGzFormat, algo: "gzip"},
		{format: TarZstdFormat, algo: "zstd"},
		{format: TarXzFormat, algo: "xz"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ar, err := reg.Create(tt.format, bytes.NewReader(compress(t, tt.algo, tarData)), extract.Options{})
			require.NoError(t, err)
			defer func() { require.NoError(t, ar.Close()) }()

			entry, err := ar.Next()
			require.NoError(t, err)
			assert.Equal(t, "x.txt", entry.Name)
			assert.Equal(t, tt.format, entry.Format)

			content, err := io.ReadAll(ar)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(content))
		})
	}
}
