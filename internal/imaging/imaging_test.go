package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradermind/internal/errors"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	idx := strings.Index(dataURL, ",")
	require.Positive(t, idx)
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	require.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return img
}

func TestProcessProducesJPEGDataURL(t *testing.T) {
	out, err := Process(encodePNG(t, 100, 50), TradeNoteOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
	img := decodeDataURL(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestProcessDownscalesWideImages(t *testing.T) {
	out, err := Process(encodePNG(t, 2400, 1200), TradeNoteOptions())
	require.NoError(t, err)

	img := decodeDataURL(t, out)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy(), "aspect ratio preserved")
}

func TestProcessResizeSlack(t *testing.T) {
	// Memory bounds only downscale above 1.5x the ceiling: 3000 < 2400*1.5.
	out, err := Process(encodePNG(t, 3000, 1000), MemoryOptions())
	require.NoError(t, err)
	img := decodeDataURL(t, out)
	assert.Equal(t, 3000, img.Bounds().Dx())

	out, err = Process(encodePNG(t, 4000, 1000), MemoryOptions())
	require.NoError(t, err)
	img = decodeDataURL(t, out)
	assert.Equal(t, 2400, img.Bounds().Dx())
}

func TestProcessRejections(t *testing.T) {
	var imgErr *apperrors.ImageError

	_, err := Process(nil, TradeNoteOptions())
	assert.ErrorAs(t, err, &imgErr)

	_, err = Process([]byte("plain text payload"), TradeNoteOptions())
	assert.ErrorAs(t, err, &imgErr)

	oversized := make([]byte, 6*1024*1024)
	_, err = Process(oversized, TradeNoteOptions())
	assert.ErrorAs(t, err, &imgErr)

	// Image MIME sniffed but body truncated.
	valid := encodePNG(t, 50, 50)
	_, err = Process(valid[:64], TradeNoteOptions())
	assert.ErrorAs(t, err, &imgErr)
}

func TestDataURLSize(t *testing.T) {
	out, err := Process(encodePNG(t, 80, 40), TradeNoteOptions())
	require.NoError(t, err)

	w, h, err := DataURLSize(out)
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)

	_, _, err = DataURLSize("no comma here")
	var imgErr *apperrors.ImageError
	assert.ErrorAs(t, err, &imgErr)
}
