package reason

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTexts(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	t.Run("embedded", func(t *testing.T) {
		texts, err := LoadTexts("")
		require.NoError(t, err)
		assert.NotEmpty(t, texts)
		for _, s := range texts {
			assert.NotEmpty(t, s)
		}
	})

	t.Run("override", func(t *testing.T) {
		texts, err := LoadTexts(write("ok.json", `["one", "", "two"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, texts)
	})

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"not a list", write("bad.json", `{"a": 1}`)},
		{"empty list", write("empty.json", `[]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTexts(tt.path)
			assert.Error(t, err)
		})
	}
}
