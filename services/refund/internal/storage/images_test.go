package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/testutil"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	s := NewImageStore(t.TempDir())

	assert.NoError(t, s.Validate(nil))
	assert.NoError(t, s.Validate(testutil.FileHeaders(t,
		testutil.Upload{Name: "a.png", Content: testutil.PNG},
		testutil.Upload{Name: "b.JPG", Content: testutil.JPEG},
	)))

	tests := []struct {
		name    string
		uploads []testutil.Upload
	}{
		{"too many", []testutil.Upload{
			{Name: "1.png", Content: testutil.PNG}, {Name: "2.png", Content: testutil.PNG},
			{Name: "3.png", Content: testutil.PNG}, {Name: "4.png", Content: testutil.PNG},
		}},
		{"bad extension", []testutil.Upload{{Name: "a.gif", Content: testutil.PNG}}},
		{"not an image", []testutil.Upload{{Name: "a.png", Content: []byte("hello, plain text")}}},
		{"too large", []testutil.Upload{{Name: "a.png", Content: append(append([]byte{}, testutil.PNG...), make([]byte, MaxFileSize)...)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(testutil.FileHeaders(t, tt.uploads...))
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

func TestSaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewImageStore(dir)

	paths, err := s.Save(testutil.FileHeaders(t, testutil.Upload{Name: "a.PNG", Content: testutil.PNG}))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Regexp(t, `^uploads/refunds/images-\d+-\d+\.png$`, paths[0])

	stored := filepath.Join(dir, "refunds", filepath.Base(paths[0]))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, testutil.PNG, data)

	s.Remove(paths)
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}
