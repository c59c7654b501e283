// Package config provides configuration management for id3-image.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Environment variable overrides (ID3IMAGE_*), optionally from a .env file
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// JPEG quality 90, tags written as ID3v2.3
//	// Up to 4 files processed at once
//	// Embedded art is not resized
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// The format follows the extension: .yaml and .yml are YAML, anything else
// is JSON.
//
// # Environment
//
//	ID3IMAGE_CONFIG          config file path used by LoadDefault
//	ID3IMAGE_JPEG_QUALITY    JPEG quality for embedded and extracted images
//	ID3IMAGE_ID3_VERSION     3 or 4
//	ID3IMAGE_MAX_CONCURRENT  files processed at once in a batch
//	ID3IMAGE_MAX_SIZE        downscale embedded art to fit NxN (0 disables)
//	ID3IMAGE_HTTP_TIMEOUT    seconds to wait for a remote image
package config
