// Package coverart implements the three cover art operations on MP3 files.
//
// # Operations
//
//	svc := coverart.NewService(settings, logger)
//
//	// Embed cover.png as a front cover JPEG (file path or http(s) URL)
//	err := svc.Embed(ctx, "song.mp3", "cover.png")
//
//	// Save the first embedded picture, format chosen by extension
//	err = svc.Extract(ctx, "song.mp3", "song.jpg")
//
//	// Drop every embedded picture
//	removed, err := svc.Remove(ctx, "song.mp3")
//
// Each operation is one read-modify-write cycle: the tag is read whole,
// changed in memory and written back whole. Nothing is written unless
// every earlier step succeeded. Errors are *model.Error values; match them
// with errors.Is against the model.Err* kinds.
package coverart
