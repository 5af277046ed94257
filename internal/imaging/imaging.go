// Package imaging ingests user-supplied images for embedding into records.
//
// Accepted images are decoded, downscaled to a bounded width, re-encoded as
// JPEG, and returned as a self-contained base64 data URL. Entities stay
// exportable as a single JSON document because the image travels inside the
// record; the cost is storage bloat and no de-duplication across entities.
package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/gif"
	_ "image/png"
	"net/http"
	"strings"

	xdraw "golang.org/x/image/draw"

	apperrors "tradermind/internal/errors"
)

// Options bound the ingestion of one image.
type Options struct {
	// MaxBytes rejects payloads above this size; 0 disables the ceiling.
	MaxBytes int
	// MaxWidth is the width ceiling after downscaling.
	MaxWidth int
	// ResizeSlack only triggers a downscale when the source width exceeds
	// MaxWidth*ResizeSlack. Values below 1 behave as 1.
	ResizeSlack float64
	// Quality is the JPEG quality (1-100).
	Quality int
}

// TradeNoteOptions are the bounds for images attached to trade notes.
func TradeNoteOptions() Options {
	return Options{MaxBytes: 5 * 1024 * 1024, MaxWidth: 1200, Quality: 70}
}

// MemoryOptions are the bounds for reference images, which keep fidelity over
// size: larger width ceiling, full quality, and a resize triggered only well
// above the ceiling.
func MemoryOptions() Options {
	return Options{MaxWidth: 2400, ResizeSlack: 1.5, Quality: 100}
}

// Process validates, downscales, and re-encodes raw image bytes, returning a
// JPEG base64 data URL. Non-image and oversized payloads are rejected with an
// ImageError naming the reason; these are user-visible failures, not silent
// drops.
func Process(data []byte, opts Options) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewImageError("empty payload", nil)
	}
	if opts.MaxBytes > 0 && len(data) > opts.MaxBytes {
		return "", apperrors.NewImageError("image exceeds the size limit", nil)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", apperrors.NewImageError("payload is not an image", nil)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperrors.NewImageError("failed to decode image", err)
	}

	dst := scale(src, opts)

	var buf bytes.Buffer
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return "", apperrors.NewImageError("failed to encode image", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scale downscales src so its width does not exceed the configured ceiling,
// flattening any transparency onto a white background.
func scale(src image.Image, opts Options) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	slack := opts.ResizeSlack
	if slack < 1 {
		slack = 1
	}

	dstWidth := width
	dstHeight := height
	if opts.MaxWidth > 0 && float64(width) > float64(opts.MaxWidth)*slack {
		dstWidth = opts.MaxWidth
		dstHeight = opts.MaxWidth * height / width
		if dstHeight < 1 {
			dstHeight = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	white := image.NewUniform(image.White.C)
	xdraw.Draw(dst, dst.Bounds(), white, image.Point{}, xdraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

// DecodedSize reports the pixel dimensions of an encoded image without a
// full ingestion pass.
func DecodedSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, apperrors.NewImageError("failed to read image header", err)
	}
	return cfg.Width, cfg.Height, nil
}

// DataURLSize reports the pixel dimensions of a stored base64 data URL.
func DataURLSize(dataURL string) (width, height int, err error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return 0, 0, apperrors.NewImageError("malformed data URL", nil)
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return 0, 0, apperrors.NewImageError("malformed data URL", err)
	}
	return DecodedSize(raw)
}
