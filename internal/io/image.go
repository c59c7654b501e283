package ioutils

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultJPEGQuality is the quality used when re-encoding cover art.
const DefaultJPEGQuality = 90

// ImageFormat is an output format selected from a file extension.
type ImageFormat int

const (
	FormatUnknown ImageFormat = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatBMP
	FormatTIFF
)

// String returns the lowercase format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FormatFromPath infers the output format from the extension of path.
// The match is case-insensitive.
//
// Example:
//
//	FormatFromPath("cover.JPG")  // FormatJPEG
//	FormatFromPath("cover.tif")  // FormatTIFF
//	FormatFromPath("cover.webp") // FormatUnknown (no encoder)
func FormatFromPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".png":
		return FormatPNG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Decode images from files, downloads and embedded picture frames
//   - Resize images to fit maximum dimensions before embedding
//   - Convert images to JPEG format (embedded art is always JPEG)
//   - Save extracted images in the format implied by the target path
//
// Example usage:
//
//	svc := NewImageService(DefaultJPEGQuality)
//
//	img, _, err := svc.DecodeFile("cover.png")
//	jpegData, err := svc.EncodeJPEG(img)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService.
//
// quality is the JPEG quality (1-100). Out of range values fall back to
// DefaultJPEGQuality.
func NewImageService(quality int) *ImageService {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ImageService{quality: quality}
}

// Quality returns the JPEG quality used by EncodeJPEG.
func (s *ImageService) Quality() int {
	return s.quality
}

// Decode decodes image data in any registered format.
//
// Returns the image and the format name reported by the decoder
// ("jpeg", "png", "gif", "bmp", "tiff", "webp").
func (s *ImageService) Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// DecodeFile reads and decodes the image at path.
func (s *ImageService) DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

// Resize scales img down to fit within maxWidth x maxHeight.
//
// The aspect ratio is preserved and images that already fit are returned
// unchanged. A non-positive bound disables resizing.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x667
//	// A 800x600 image is returned as is
//	resized := svc.Resize(img, 1000, 1000)
func (s *ImageService) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	if maxWidth <= 0 || maxHeight <= 0 {
		return img
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	// Calculate new dimensions maintaining aspect ratio
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

// EncodeJPEG encodes img as JPEG at the service quality.
func (s *ImageService) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes img to w in the given format.
func (s *ImageService) Encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: s.quality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %v", format)
	}
}

// SaveFile encodes img in the format implied by the extension of path and
// writes it there, overwriting any existing file.
//
// The image is encoded in memory first, so an unsupported extension or an
// encoder failure leaves an existing file untouched.
func (s *ImageService) SaveFile(img image.Image, path string) error {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return fmt.Errorf("unsupported image file extension %q", filepath.Ext(path))
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, img, format); err != nil {
		return err
	}

	return WriteFile(path, buf.Bytes())
}
