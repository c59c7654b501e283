package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf16"

	"github.com/bogem/id3v2"
)

const (
	tagHeaderSize   = 10
	frameHeaderSize = 10

	flagExtendedHeader = 0x40
)

// rawTag is the undecoded frame area of an ID3v2 tag.
type rawTag struct {
	version byte
	frames  []byte
	// truncated is set when the file ends before the declared tag size.
	truncated bool
}

// rawFrame is one frame, header included.
type rawFrame struct {
	id   string
	data []byte
}

// orderedFrame gives every frame its own identity. id3v2 replaces a frame
// in a sequence when UniqueIdentifier matches, which would merge pictures
// sharing a description.
type orderedFrame struct {
	id3v2.Framer
	seq int
}

func (f orderedFrame) UniqueIdentifier() string {
	return fmt.Sprintf("%s\x00%d", f.Framer.UniqueIdentifier(), f.seq)
}

func unwrapFrame(frame id3v2.Framer) id3v2.Framer {
	if of, ok := frame.(orderedFrame); ok {
		frame = of.Framer
	}
	if ef, ok := frame.(encodedFrame); ok {
		return ef.Framer
	}
	return frame
}

// readRawTag reads the tag header and frame area of path. A file without
// a tag yields a zero rawTag.
func readRawTag(path string) (rawTag, error) {
	file, err := os.Open(path)
	if err != nil {
		return rawTag{}, err
	}
	defer file.Close()

	header := make([]byte, tagHeaderSize)
	if _, err := io.ReadFull(file, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return rawTag{}, nil
		}
		return rawTag{}, err
	}
	if !bytes.Equal(header[:3], []byte("ID3")) {
		return rawTag{}, nil
	}

	size, ok := synchsafeSize(header[6:10])
	if !ok {
		return rawTag{}, fmt.Errorf("invalid tag size %x", header[6:10])
	}

	frames, err := io.ReadAll(io.LimitReader(file, int64(size)))
	if err != nil {
		return rawTag{}, err
	}
	tag := rawTag{
		version:   header[3],
		frames:    frames,
		truncated: len(frames) < size,
	}

	if header[5]&flagExtendedHeader != 0 && len(tag.frames) >= 4 {
		n := int(binary.BigEndian.Uint32(tag.frames[:4])) + 4
		if tag.version == 4 {
			n, _ = synchsafeSize(tag.frames[:4])
		}
		if n < 4 || n > len(tag.frames) {
			return rawTag{}, fmt.Errorf("invalid extended header size %d", n)
		}
		tag.frames = tag.frames[n:]
	}
	return tag, nil
}

// splitFrames cuts data at frame boundaries. It stops quietly at padding
// and returns the frames read so far together with an error when a frame
// header is damaged or a frame runs past the tag.
func splitFrames(data []byte, version byte) ([]rawFrame, error) {
	var frames []rawFrame
	for len(data) >= frameHeaderSize {
		id := data[:4]
		if id[0] == 0 {
			break
		}
		if !validFrameID(id) {
			return frames, fmt.Errorf("invalid frame id %q", id)
		}

		size, ok := frameSize(data[4:8], version)
		if !ok {
			return frames, fmt.Errorf("invalid size of frame %s", id)
		}

		end := frameHeaderSize + size
		if end > len(data) {
			return frames, fmt.Errorf("frame %s: %w", id, id3v2.ErrBodyOverflow)
		}
		// Empty frames carry nothing to keep.
		if size > 0 {
			frames = append(frames, rawFrame{id: string(id), data: data[:end]})
		}
		data = data[end:]
	}
	return frames, nil
}

// parseFrame decodes one frame with id3v2 by presenting it as a tag of its
// own.
func parseFrame(version byte, frame rawFrame) (id3v2.Framer, error) {
	var buf bytes.Buffer
	buf.Grow(tagHeaderSize + len(frame.data))
	buf.WriteString("ID3")
	buf.Write([]byte{version, 0, 0})
	buf.Write(synchsafeBytes(len(frame.data)))
	buf.Write(frame.data)

	tag, err := id3v2.ParseReader(&buf, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", frame.id, err)
	}
	parsed := tag.GetFrames(frame.id)
	if len(parsed) != 1 {
		return nil, fmt.Errorf("frame %s could not be parsed", frame.id)
	}
	return parsed[0], nil
}

// writeForm returns frame as it is written into an ID3v2.version tag and
// reports whether that differs from frame. ID3v2.3 lacks UTF-8 and
// UTF-16BE, so text in those encodings moves to ISO-8859-1 when it fits
// and to UTF-16 otherwise. UTF-16 frames are serialized here since id3v2
// pads that encoding with a stray zero byte.
func writeForm(frame id3v2.Framer, version byte) (id3v2.Framer, bool) {
	var changed bool
	switch f := frame.(type) {
	case orderedFrame:
		f.Framer, changed = writeForm(f.Framer, version)
		return f, changed
	case encodedFrame:
		return f, false
	case id3v2.TextFrame:
		f.Encoding, changed = encodingFor(version, f.Encoding, f.Text)
		if f.Encoding.Equals(id3v2.EncodingUTF16) {
			return encodedFrame{f, concat([]byte{1}, utf16Text(f.Text), utf16Term)}, true
		}
		return f, changed
	case id3v2.UserDefinedTextFrame:
		f.Encoding, changed = encodingFor(version, f.Encoding, f.Description, f.Value)
		if f.Encoding.Equals(id3v2.EncodingUTF16) {
			return encodedFrame{f, concat([]byte{1}, utf16Text(f.Description), utf16Term, utf16Text(f.Value))}, true
		}
		return f, changed
	case id3v2.CommentFrame:
		f.Encoding, changed = encodingFor(version, f.Encoding, f.Description, f.Text)
		if f.Encoding.Equals(id3v2.EncodingUTF16) {
			return encodedFrame{f, concat([]byte{1}, []byte(f.Language), utf16Text(f.Description), utf16Term, utf16Text(f.Text))}, true
		}
		return f, changed
	case id3v2.UnsynchronisedLyricsFrame:
		f.Encoding, changed = encodingFor(version, f.Encoding, f.ContentDescriptor, f.Lyrics)
		if f.Encoding.Equals(id3v2.EncodingUTF16) {
			return encodedFrame{f, concat([]byte{1}, []byte(f.Language), utf16Text(f.ContentDescriptor), utf16Term, utf16Text(f.Lyrics))}, true
		}
		return f, changed
	case id3v2.PictureFrame:
		f.Encoding, changed = encodingFor(version, f.Encoding, f.Description)
		if f.Encoding.Equals(id3v2.EncodingUTF16) {
			head := concat([]byte{1}, []byte(f.MimeType), []byte{0, f.PictureType}, utf16Text(f.Description), utf16Term)
			return encodedFrame{f, concat(head, f.Picture)}, true
		}
		return f, changed
	}
	return frame, false
}

func encodingFor(version byte, enc id3v2.Encoding, texts ...string) (id3v2.Encoding, bool) {
	if version != 3 || !(enc.Equals(id3v2.EncodingUTF8) || enc.Equals(id3v2.EncodingUTF16BE)) {
		return enc, false
	}
	for _, text := range texts {
		for _, r := range text {
			if r > 0xFF {
				return id3v2.EncodingUTF16, true
			}
		}
	}
	return id3v2.EncodingISO, true
}

// encodedFrame is a frame whose body was serialized ahead of writing.
type encodedFrame struct {
	id3v2.Framer
	body []byte
}

func (f encodedFrame) Size() int {
	return len(f.body)
}

func (f encodedFrame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.body)
	return int64(n), err
}

var utf16Term = []byte{0, 0}

// utf16Text encodes s as little-endian UTF-16 behind a byte order mark.
func utf16Text(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 0, 2+2*len(units))
	buf = append(buf, 0xFF, 0xFE)
	for _, u := range units {
		buf = append(buf, byte(u), byte(u>>8))
	}
	return buf
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func validFrameID(id []byte) bool {
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// frameSize decodes a frame header size: synchsafe in ID3v2.4, plain
// big-endian in ID3v2.3.
func frameSize(b []byte, version byte) (int, bool) {
	if version == 4 {
		return synchsafeSize(b)
	}
	return int(binary.BigEndian.Uint32(b)), true
}

func synchsafeSize(b []byte) (int, bool) {
	var n int
	for _, c := range b {
		if c&0x80 != 0 {
			return 0, false
		}
		n = n<<7 | int(c)
	}
	return n, true
}

func synchsafeBytes(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7f,
		byte(n>>14) & 0x7f,
		byte(n>>7) & 0x7f,
		byte(n) & 0x7f,
	}
}
