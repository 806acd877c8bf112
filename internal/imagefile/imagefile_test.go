package imagefile

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "cat.png", encodePNG(t, 4, 3))
	format, err := Validate(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestValidateIgnoresExtension(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	path := writeFile(t, "looks_like.txt", buf.Bytes())

	format, err := Validate(path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "text file named png", path: func(t *testing.T) string { return writeFile(t, "fake.png", []byte("hello")) }},
		{name: "missing", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.png") }},
		{name: "directory", path: func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.path(t))
			assert.ErrorIs(t, err, ErrInvalidImageFormat)
		})
	}
}

func TestDecode(t *testing.T) {
	path := writeFile(t, "ok.png", encodePNG(t, 5, 2))
	img, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Bounds())
}

func TestDecodeTruncated(t *testing.T) {
	data := encodePNG(t, 32, 32)
	path := writeFile(t, "broken.png", data[:40])

	_, err := Validate(path)
	require.NoError(t, err, "header is intact")

	_, err = Decode(path)
	assert.ErrorIs(t, err, ErrDecodeFailure)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "photo_ASCII.txt"), OutputPath("/tmp/pics/photo.jpeg", "out"))
	assert.Equal(t, filepath.Join(".", "archive.tar_ASCII.txt"), OutputPath("archive.tar.gz", "."))
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a_ASCII.txt")
	require.NoError(t, WriteText(path, "@@\n  \n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@@\n  \n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteTextFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "a_ASCII.txt")
	err := WriteText(path, "x")
	assert.ErrorIs(t, err, ErrWriteFailure)
	assert.NoFileExists(t, path)
}
