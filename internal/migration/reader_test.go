package migration

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBOMReader(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		wantBOM bool
	}{
		{
			name:    "file with BOM",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, []byte("SELECT 1;")...),
			want:    "SELECT 1;",
			wantBOM: true,
		},
		{
			name:  "file without BOM",
			input: []byte("SELECT 1;"),
			want:  "SELECT 1;",
		},
		{
			name:  "empty file",
			input: []byte{},
			want:  "",
		},
		{
			name:    "only BOM",
			input:   []byte{0xEF, 0xBB, 0xBF},
			want:    "",
			wantBOM: true,
		},
		{
			name:  "partial BOM at start",
			input: []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			want:  string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
		{
			name:  "shorter than a BOM",
			input: []byte{'a'},
			want:  "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMReader(bytes.NewReader(tt.input))
			got, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantBOM, reader.HadBOM())
		})
	}
}

func TestCountingReader(t *testing.T) {
	counter := NewCountingReader(bytes.NewReader([]byte("0123456789")))
	_, err := io.ReadAll(counter)
	require.NoError(t, err)
	assert.Equal(t, int64(10), counter.BytesRead)
}
