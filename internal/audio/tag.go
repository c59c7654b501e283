package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/bogem/id3v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/handiism/id3-image/internal/model"
	"github.com/rs/zerolog"
)

// DefaultVersion is the ID3v2 minor version tags are written as.
const DefaultVersion = 3

// mp3MIME is what mimetype reports for MPEG audio, tagged or not.
const mp3MIME = "audio/mpeg"

// pictureDescription is the id3v2 common name of the APIC frame.
const pictureDescription = "Attached picture"

// TagFile is the ID3v2 tag of one MP3 file held in memory.
//
// A TagFile keeps the underlying file open until Close is called.
type TagFile struct {
	path    string
	tag     *id3v2.Tag
	partial bool
	seq     int
}

// ReadTag opens path and parses its ID3v2 tag.
//
// Files without a tag yield an empty TagFile. Frames are read one at a
// time; when the tag is damaged, the frames before the damage are kept,
// a warning is logged and Partial reports true. Other failures are
// returned as *model.Error of kind model.ErrTagRead.
func ReadTag(path string, logger zerolog.Logger) (*TagFile, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, model.NewError(model.ErrTagRead, path, err)
	}
	if !mtype.Is(mp3MIME) {
		return nil, model.NewError(model.ErrTagRead, path, fmt.Errorf("not an MP3 file (detected %s)", mtype))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, model.NewError(model.ErrTagRead, path, err)
	}
	// Only the header is read here; frames are decoded below.
	tag, err := id3v2.ParseReader(file, id3v2.Options{Parse: false})
	if err != nil {
		file.Close()
		return nil, model.NewError(model.ErrTagRead, path, err)
	}

	raw, err := readRawTag(path)
	if err != nil {
		tag.Close()
		return nil, model.NewError(model.ErrTagRead, path, err)
	}

	f := &TagFile{path: path, tag: tag}

	frames, damage := splitFrames(raw.frames, raw.version)
	if damage == nil && raw.truncated {
		damage = errors.New("file ends inside the tag")
	}
	if damage != nil {
		logger.Warn().Str("file", path).Err(damage).Msg("file metadata is corrupted, trying to read partial tag")
		f.partial = true
	}

	for _, rf := range frames {
		frame, err := parseFrame(raw.version, rf)
		if err != nil {
			if !f.partial {
				logger.Warn().Str("file", path).Err(err).Msg("file metadata is corrupted, trying to read partial tag")
			}
			f.partial = true
			break
		}
		f.add(rf.id, frame)
	}

	if f.partial {
		logger.Warn().Str("file", path).Int("frames", f.FrameCount()).Msg("recovered partial tag")
	}
	return f, nil
}

// Path returns the file the tag was read from.
func (f *TagFile) Path() string {
	return f.path
}

// Partial reports whether the tag was recovered from corrupted metadata.
func (f *TagFile) Partial() bool {
	return f.partial
}

// Version returns the ID3v2 minor version of the tag (3 or 4).
func (f *TagFile) Version() int {
	return int(f.tag.Version())
}

// FrameCount returns the number of frames currently held.
func (f *TagFile) FrameCount() int {
	return f.tag.Count()
}

// Pictures returns the attached pictures in frame insertion order.
func (f *TagFile) Pictures() []model.Picture {
	frames := f.tag.GetFrames(f.pictureID())
	pics := make([]model.Picture, 0, len(frames))
	for _, frame := range frames {
		pf, ok := unwrapFrame(frame).(id3v2.PictureFrame)
		if !ok {
			continue
		}
		pics = append(pics, model.Picture{
			MIMEType:    pf.MimeType,
			Type:        model.PictureType(pf.PictureType),
			Description: pf.Description,
			Data:        pf.Picture,
		})
	}
	return pics
}

// AddPicture appends pic after any existing pictures. Existing frames are
// never replaced, even when they share the description.
func (f *TagFile) AddPicture(pic model.Picture) {
	f.add(f.pictureID(), id3v2.PictureFrame{
		Encoding:    id3v2.EncodingISO,
		MimeType:    pic.MIMEType,
		PictureType: byte(pic.Type),
		Description: pic.Description,
		Picture:     pic.Data,
	})
}

// RemovePictures deletes every attached picture and returns how many were
// removed.
func (f *TagFile) RemovePictures() int {
	id := f.pictureID()
	n := len(f.tag.GetFrames(id))
	f.tag.DeleteFrames(id)
	return n
}

// Write serializes the tag as ID3v2.version and rewrites the file.
//
// Versions other than 3 and 4 fall back to DefaultVersion. Text held in
// encodings ID3v2.3 lacks is re-encoded when writing version 3.
// The rewrite goes through a temporary file next to the original; failures
// are returned as *model.Error of kind model.ErrTagWrite.
func (f *TagFile) Write(version int) error {
	if version != 3 && version != 4 {
		version = DefaultVersion
	}
	f.prepareFrames(byte(version))
	f.tag.SetVersion(byte(version))

	if err := f.tag.Save(); err != nil {
		return model.NewError(model.ErrTagWrite, f.path, err)
	}
	return nil
}

// Close releases the underlying file.
func (f *TagFile) Close() error {
	return f.tag.Close()
}

// add appends frame under id, keeping it distinct from every other frame.
func (f *TagFile) add(id string, frame id3v2.Framer) {
	f.seq++
	f.tag.AddFrame(id, orderedFrame{Framer: frame, seq: f.seq})
}

// prepareFrames swaps every frame for its writeForm, keeping order.
func (f *TagFile) prepareFrames(version byte) {
	for id, frames := range f.tag.AllFrames() {
		converted := make([]id3v2.Framer, len(frames))
		changed := false
		for i, frame := range frames {
			var c bool
			converted[i], c = writeForm(frame, version)
			changed = changed || c
		}
		if !changed {
			continue
		}
		f.tag.DeleteFrames(id)
		for _, frame := range converted {
			f.tag.AddFrame(id, frame)
		}
	}
}

func (f *TagFile) pictureID() string {
	return f.tag.CommonID(pictureDescription)
}
