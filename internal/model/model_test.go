package model

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestPictureType_String(t *testing.T) {
	tests := []struct {
		pt   PictureType
		want string
	}{
		{PictureTypeOther, "Other"},
		{PictureTypeFrontCover, "Cover (front)"},
		{PictureTypeBackCover, "Cover (back)"},
		{PictureTypePublisherLogotype, "Publisher/Studio logotype"},
		{PictureType(42), "Unknown (42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.pt.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPictureType_MatchesID3Bytes(t *testing.T) {
	if PictureTypeFrontCover != 3 {
		t.Errorf("PictureTypeFrontCover = %d, want 3", PictureTypeFrontCover)
	}
	if PictureTypePublisherLogotype != 20 {
		t.Errorf("PictureTypePublisherLogotype = %d, want 20", PictureTypePublisherLogotype)
	}
}

func TestNewCoverPicture(t *testing.T) {
	pic := NewCoverPicture([]byte{1, 2, 3})

	if pic.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", pic.MIMEType)
	}
	if pic.Type != PictureTypeFrontCover {
		t.Errorf("Type = %v, want front cover", pic.Type)
	}
	if pic.Description != "" {
		t.Errorf("Description = %q, want empty", pic.Description)
	}
	if pic.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pic.Size())
	}
	if !strings.Contains(pic.String(), "Cover (front)") {
		t.Errorf("String() = %q, missing type name", pic.String())
	}
}

func TestError_Is(t *testing.T) {
	err := NewError(ErrNoImageFound, "song.mp3", nil)
	wrapped := fmt.Errorf("extract: %w", err)

	if !errors.Is(wrapped, ErrNoImageFound) {
		t.Error("errors.Is should match ErrNoImageFound through wrapping")
	}
	if errors.Is(wrapped, ErrTagRead) {
		t.Error("errors.Is should not match a different kind")
	}

	var modelErr *Error
	if !errors.As(wrapped, &modelErr) {
		t.Fatal("errors.As should find *Error")
	}
	if modelErr.Path != "song.mp3" {
		t.Errorf("Path = %q, want song.mp3", modelErr.Path)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := NewError(ErrTagRead, "missing.mp3", fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the underlying cause")
	}
	if !errors.Is(err, ErrTagRead) {
		t.Error("errors.Is should match the kind")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NewError(ErrTagRead, "a.mp3", errors.New("boom")), `Error reading music file "a.mp3": boom`},
		{NewError(ErrTagWrite, "a.mp3", errors.New("disk full")), `Error writing image to music file "a.mp3": disk full`},
		{NewError(ErrImageDecode, "c.png", errors.New("bad")), `Error reading image "c.png": bad`},
		{NewError(ErrImageWrite, "o.jpg", errors.New("denied")), `Couldn't write image file "o.jpg": denied`},
		{NewError(ErrNoImageFound, "a.mp3", nil), `No image found in music file "a.mp3"`},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.Error(), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
