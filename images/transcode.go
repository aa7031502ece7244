package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"imglink/config"
)

// Transcoded is an encoded image ready to be embedded.
type Transcoded struct {
	Data   []byte
	Format imaging.Format
	Width  int
	Height int
	// Resized is false when source was not wider than requested.
	Resized bool
}

// Ext returns file extension (without dot) matching encoded format.
func (t *Transcoded) Ext() string {
	switch t.Format {
	case imaging.JPEG:
		return "jpeg"
	case imaging.GIF:
		return "gif"
	case imaging.BMP:
		return "bmp"
	case imaging.TIFF:
		return "tiff"
	default:
		return "png"
	}
}

// MimeType returns content type of encoded data.
func (t *Transcoded) MimeType() string {
	return "image/" + t.Ext()
}

// Transcode reads image file and returns it encoded in memory, scaled down to
// targetWidth pixels if it is wider. Images are never upscaled. Source file is
// read once and never modified.
func Transcode(path string, targetWidth int, cfg *config.ImagesConfig) (*Transcoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	t, err := TranscodeBytes(data, targetWidth, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to process image (%s): %w", path, err)
	}
	return t, nil
}

// TranscodeBytes does the same as Transcode for image already in memory.
func TranscodeBytes(data []byte, targetWidth int, cfg *config.ImagesConfig) (*Transcoded, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("invalid target width %d", targetWidth)
	}

	format := detectFormat(data)

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(cfg.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("unable to decode: %w", err)
	}

	t := &Transcoded{Format: format}
	if w := img.Bounds().Dx(); w > targetWidth {
		h := ScaledHeight(w, img.Bounds().Dy(), targetWidth)
		img = imaging.Resize(img, targetWidth, h, imaging.Lanczos)
		if img == nil || img.Bounds().Empty() {
			return nil, errors.New("unable to resize")
		}
		t.Resized = true
	}
	t.Width, t.Height = img.Bounds().Dx(), img.Bounds().Dy()

	if t.Data, err = encode(img, format, cfg); err != nil {
		return nil, fmt.Errorf("unable to encode %s: %w", t.Ext(), err)
	}
	return t, nil
}

// ScaledHeight returns height keeping aspect ratio when width changes from
// width to target, rounded to the nearest pixel and never less than one.
func ScaledHeight(width, height, target int) int {
	return max(int(math.Round(float64(height)*float64(target)/float64(width))), 1)
}

// detectFormat sniffs encoded format from content, unknown formats are
// re-encoded as PNG.
func detectFormat(data []byte) imaging.Format {
	kind, err := filetype.Image(data)
	if err != nil {
		return imaging.PNG
	}
	switch kind.Extension {
	case "jpg":
		return imaging.JPEG
	case "gif":
		return imaging.GIF
	case "bmp":
		return imaging.BMP
	case "tif":
		return imaging.TIFF
	default:
		return imaging.PNG
	}
}

func encode(img image.Image, format imaging.Format, cfg *config.ImagesConfig) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch format {
	case imaging.JPEG:
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(cfg.JPEGQuality)); err != nil {
			return nil, err
		}
		if cfg.JPEGDPI <= 0 {
			return buf.Bytes(), nil
		}
		data, _, err := EnsureJFIFAPP0(buf.Bytes(), DpiPxPerInch, int16(cfg.JPEGDPI), int16(cfg.JPEGDPI))
		return data, err
	case imaging.PNG:
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, err
		}
	default:
		if err := imaging.Encode(buf, img, format); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
