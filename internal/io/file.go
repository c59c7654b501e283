package ioutils

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// ReplaceExtension swaps the extension of path for ext.
//
// ext may be given with or without a leading dot. A path without an
// extension gets ext appended.
//
// Example:
//
//	ReplaceExtension("/music/song.mp3", "jpg")  // "/music/song.jpg"
//	ReplaceExtension("/music/song", ".png")     // "/music/song.png"
//	ReplaceExtension("/music/a.b/song", "jpg")  // "/music/a.b/song.jpg"
func ReplaceExtension(path, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// IsURL reports whether source looks like an http(s) URL rather than a
// file system path.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
