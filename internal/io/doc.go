// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Decoding cover art in any registered raster format
//   - Re-encoding images as JPEG for embedding
//   - Resizing images to fit maximum dimensions
//   - Saving images in the format implied by a file extension
//   - Path helpers for default output names
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService(90)
//
//	// Decode anything registered (JPEG, PNG, GIF, BMP, TIFF, WebP)
//	img, format, _ := svc.Decode(data)
//
//	// Fit within 500x500 and encode as JPEG
//	jpegData, _ := svc.EncodeJPEG(svc.Resize(img, 500, 500))
//
//	// Save in the format implied by the extension
//	err := svc.SaveFile(img, "/tmp/cover.png")
//
// # File Operations
//
//	out := ioutils.ReplaceExtension("/music/song.mp3", "jpg") // "/music/song.jpg"
package ioutils
