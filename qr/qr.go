// Package qr encodes text into styled QR code rasters and serializes them
// for display and download.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/bmp"
)

// ErrEmptyInput is returned when there is no text to encode.
var ErrEmptyInput = errors.New("please enter text to encode")

// RecoveryLevel is the error correction level for every generated code
// (~30% of the symbol can be restored).
const RecoveryLevel = qrcode.Highest

// Image is a rendered QR code.
type Image struct {
	// Raster has a two-color palette: index 0 is the background, index 1
	// the foreground.
	Raster *image.Paletted
	// Version is the QR version chosen to fit the payload (1-40).
	Version int
	// Modules is the symbol width in modules, without the border.
	Modules int
	Style   Style
}

// Encode builds a QR code for text using the smallest version that fits at
// RecoveryLevel and paints it with style. The result is deterministic for
// identical arguments.
func Encode(text string, style Style) (*Image, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	style = style.Normalize()

	fg, err := ParseHexColor(style.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHexColor(style.Background)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(text, RecoveryLevel)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.DisableBorder = true
	code.ForegroundColor = fg
	code.BackgroundColor = bg

	bitmap := code.Bitmap()
	modules := len(bitmap)
	side := (modules + 2*style.BorderWidth) * style.ModuleSize

	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{code.BackgroundColor, code.ForegroundColor})
	offset := style.BorderWidth * style.ModuleSize
	for my, row := range bitmap {
		for mx, dark := range row {
			if !dark {
				continue
			}
			x0 := offset + mx*style.ModuleSize
			y0 := offset + my*style.ModuleSize
			for y := y0; y < y0+style.ModuleSize; y++ {
				start := img.PixOffset(x0, y)
				for i := 0; i < style.ModuleSize; i++ {
					img.Pix[start+i] = 1
				}
			}
		}
	}

	return &Image{
		Raster:  img,
		Version: code.VersionNumber,
		Modules: modules,
		Style:   style,
	}, nil
}

// PNG serializes img as PNG bytes.
func PNG(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Raster); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// BMP serializes img as BMP bytes.
func BMP(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img.Raster); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePNG encodes text with style and returns the PNG bytes.
func GeneratePNG(text string, style Style) ([]byte, error) {
	img, err := Encode(text, style)
	if err != nil {
		return nil, err
	}
	return PNG(img)
}
