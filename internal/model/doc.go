// Package model defines the core data structures shared by the
// id3-image tools.
//
// # Picture
//
// Picture is one embedded image (an ID3v2 APIC frame) detached from any
// tag library:
//
//	pic := model.Picture{
//	    MIMEType: "image/jpeg",
//	    Type:     model.PictureTypeFrontCover,
//	    Data:     jpegBytes,
//	}
//	fmt.Println(pic.Type) // "Cover (front)"
//
// # Errors
//
// Every failure the tools report is a *Error carrying an ErrorKind and the
// offending path. Kinds are errors themselves, so callers match with
// errors.Is:
//
//	if errors.Is(err, model.ErrNoImageFound) {
//	    // the music file has no pictures
//	}
package model
