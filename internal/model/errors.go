package model

import "fmt"

// ErrorKind classifies a failure. Kinds implement error so they can be
// used as errors.Is targets.
type ErrorKind int

const (
	// ErrTagRead means the music file is missing, not an MP3 stream, or
	// its tag is corrupted beyond partial recovery.
	ErrTagRead ErrorKind = iota + 1

	// ErrTagWrite means serializing the tag back into the file failed.
	ErrTagWrite

	// ErrImageDecode means image bytes could not be read or decoded.
	ErrImageDecode

	// ErrImageWrite means the extracted image could not be saved.
	ErrImageWrite

	// ErrNoImageFound means the music file holds no picture frames.
	ErrNoImageFound
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrTagRead:
		return "tag read error"
	case ErrTagWrite:
		return "tag write error"
	case ErrImageDecode:
		return "image decode error"
	case ErrImageWrite:
		return "image write error"
	case ErrNoImageFound:
		return "no image found"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is a failure tied to one file.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

// NewError builds an *Error of the given kind.
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrTagRead:
		msg = fmt.Sprintf("Error reading music file %q", e.Path)
	case ErrTagWrite:
		msg = fmt.Sprintf("Error writing image to music file %q", e.Path)
	case ErrImageDecode:
		msg = fmt.Sprintf("Error reading image %q", e.Path)
	case ErrImageWrite:
		msg = fmt.Sprintf("Couldn't write image file %q", e.Path)
	case ErrNoImageFound:
		msg = fmt.Sprintf("No image found in music file %q", e.Path)
	default:
		msg = fmt.Sprintf("%v: %q", e.Kind, e.Path)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
