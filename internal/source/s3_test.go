package source

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDownloader struct {
	bucket string
	key    string
	body   []byte
}

func (m *mockDownloader) GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.bucket = *input.Bucket
	m.key = *input.Key
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(m.body))}, nil
}

func TestOpenS3WithClient(t *testing.T) {
	mock := &mockDownloader{body: []byte("object bytes")}

	stream, err := OpenS3WithClient(t.Context(), mock, "backups", "site/archive.tar.gz")
	require.NoError(t, err)
	defer func() { require.NoError(t, stream.Close()) }()

	content, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "object bytes", string(content))
	assert.Equal(t, "backups", mock.bucket)
	assert.Equal(t, "site/archive.tar.gz", mock.key)
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			name:       "bucket and key",
			url:        "s3://backups/site/archive.tar.gz",
			wantBucket: "backups",
			wantKey:    "site/archive.tar.gz",
		},
		{
			name:    "missing key",
			url:     "s3://backups",
			wantErr: true,
		},
		{
			name:    "missing bucket",
			url:     "s3:///archive.tar.gz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := parseS3URL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
