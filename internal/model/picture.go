package model

import "fmt"

// PictureType is the ID3v2 attached picture classification.
//
// Values match the single byte stored in an APIC frame, so a PictureType
// can be converted to and from the tag representation without a lookup.
type PictureType byte

const (
	PictureTypeOther PictureType = iota
	PictureTypeFileIcon
	PictureTypeOtherFileIcon
	PictureTypeFrontCover
	PictureTypeBackCover
	PictureTypeLeaflet
	PictureTypeMedia
	PictureTypeLeadArtist
	PictureTypeArtist
	PictureTypeConductor
	PictureTypeBand
	PictureTypeComposer
	PictureTypeLyricist
	PictureTypeRecordingLocation
	PictureTypeDuringRecording
	PictureTypeDuringPerformance
	PictureTypeVideoScreenCapture
	PictureTypeBrightFish
	PictureTypeIllustration
	PictureTypeBandLogotype
	PictureTypePublisherLogotype
)

var pictureTypeNames = [...]string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

// String returns the description used by the ID3v2 standard.
func (t PictureType) String() string {
	if int(t) < len(pictureTypeNames) {
		return pictureTypeNames[t]
	}
	return fmt.Sprintf("Unknown (%d)", byte(t))
}

// Picture is a single embedded image.
type Picture struct {
	// MIMEType of Data, e.g. "image/jpeg".
	MIMEType string

	// Type classifies what the image depicts.
	Type PictureType

	// Description is optional free text, empty for pictures we embed.
	Description string

	// Data holds the encoded image bytes.
	Data []byte
}

// NewCoverPicture returns a front cover JPEG picture with an empty description.
func NewCoverPicture(jpegData []byte) Picture {
	return Picture{
		MIMEType: "image/jpeg",
		Type:     PictureTypeFrontCover,
		Data:     jpegData,
	}
}

// Size returns the payload length in bytes.
func (p Picture) Size() int {
	return len(p.Data)
}

// String summarizes the picture for status output.
func (p Picture) String() string {
	return fmt.Sprintf("%s, %s, %d bytes", p.Type, p.MIMEType, len(p.Data))
}
