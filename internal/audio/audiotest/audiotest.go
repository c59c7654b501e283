// Package audiotest provides MP3 and image fixtures for tests.
//
// Fixtures are synthesized instead of checked in: an MPEG-1 Layer III
// stream of silent frames is enough for tag libraries and content
// sniffers to treat the file as MP3.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/bogem/id3v2"
)

// frameHeader is MPEG-1 Layer III, 128 kbit/s, 44.1 kHz, no CRC, no padding.
var frameHeader = []byte{0xFF, 0xFB, 0x90, 0x00}

// frameSize is 144 * 128000 / 44100 rounded down.
const frameSize = 417

// MP3Frames returns n silent MPEG audio frames.
func MP3Frames(n int) []byte {
	var buf bytes.Buffer
	frame := make([]byte, frameSize)
	copy(frame, frameHeader)
	for i := 0; i < n; i++ {
		buf.Write(frame)
	}
	return buf.Bytes()
}

// WriteMP3 creates an untagged MP3 file named name inside dir.
func WriteMP3(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, MP3Frames(16))
}

// WriteTaggedMP3 creates an MP3 file with an ID3v2.3 tag holding a title
// frame and one attached picture per entry in pictures. The tag is built
// byte by byte, so pictures sharing a description all reach the file.
func WriteTaggedMP3(t testing.TB, dir, name string, pictures ...id3v2.PictureFrame) string {
	t.Helper()
	frames := []RawFrame{{ID: "TIT2", Body: TextBody(0, "Fixture Title")}}
	for _, pic := range pictures {
		frames = append(frames, RawFrame{ID: "APIC", Body: APICBody(pic)})
	}
	return WriteRawTaggedMP3(t, dir, name, ID3Tag(3, frames...))
}

// WriteRawTaggedMP3 creates an MP3 file that starts with tag.
func WriteRawTaggedMP3(t testing.TB, dir, name string, tag []byte) string {
	t.Helper()
	return WriteFile(t, dir, name, append(append([]byte{}, tag...), MP3Frames(16)...))
}

// RawFrame is one ID3v2 frame. A non-zero Size is written as the declared
// body size in place of len(Body).
type RawFrame struct {
	ID   string
	Body []byte
	Size int
}

// ID3Tag encodes an ID3v2.version tag. Frame sizes are synchsafe for
// version 4 and plain big-endian otherwise.
func ID3Tag(version byte, frames ...RawFrame) []byte {
	var body bytes.Buffer
	for _, f := range frames {
		size := f.Size
		if size == 0 {
			size = len(f.Body)
		}
		body.WriteString(f.ID)
		if version == 4 {
			body.Write(synchsafe(size))
		} else {
			body.Write([]byte{byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)})
		}
		body.Write([]byte{0, 0})
		body.Write(f.Body)
	}

	var tag bytes.Buffer
	tag.WriteString("ID3")
	tag.Write([]byte{version, 0, 0})
	tag.Write(synchsafe(body.Len()))
	tag.Write(body.Bytes())
	return tag.Bytes()
}

// TextBody encodes a text frame body. enc is the ID3v2 encoding byte and
// text is written as-is, so it must already be in that encoding.
func TextBody(enc byte, text string) []byte {
	return append([]byte{enc}, text...)
}

// APICBody encodes an attached picture frame body. The description is
// written as-is followed by the terminator of pic.Encoding.
func APICBody(pic id3v2.PictureFrame) []byte {
	var buf bytes.Buffer
	buf.WriteByte(pic.Encoding.Key)
	buf.WriteString(pic.MimeType)
	buf.WriteByte(0)
	buf.WriteByte(pic.PictureType)
	buf.WriteString(pic.Description)
	buf.Write(pic.Encoding.TerminationBytes)
	buf.Write(pic.Picture)
	return buf.Bytes()
}

func synchsafe(n int) []byte {
	return []byte{byte(n>>21) & 0x7f, byte(n>>14) & 0x7f, byte(n>>7) & 0x7f, byte(n) & 0x7f}
}

// CoverFrame returns a front cover picture frame holding a small JPEG.
func CoverFrame(t testing.TB) id3v2.PictureFrame {
	t.Helper()
	return id3v2.PictureFrame{
		Encoding:    id3v2.EncodingISO,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     JPEG(t, 8, 8),
	}
}

// Image returns a w x h gradient.
func Image(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}
	return img
}

// JPEG returns a w x h gradient encoded as JPEG.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Image(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// PNG returns a w x h gradient encoded as PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(w, h)); err != nil {
		t.Fatalf("encode png fixture: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// ReadFrames returns the minor version and the frames of the ID3v2 tag at
// the start of path, in file order. It decodes the bytes itself so that
// duplicate frames are seen as written.
func ReadFrames(t testing.TB, path string) (byte, []RawFrame) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0, nil
	}
	version := data[3]
	end := 10 + unsynchsafe(data[6:10])
	if end > len(data) {
		t.Fatalf("%s: tag runs past end of file", path)
	}

	var frames []RawFrame
	for pos := 10; pos+10 <= end && data[pos] != 0; {
		var size int
		if version == 4 {
			size = unsynchsafe(data[pos+4 : pos+8])
		} else {
			size = int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		}
		bodyEnd := pos + 10 + size
		if bodyEnd > end {
			t.Fatalf("%s: frame %s runs past tag", path, data[pos:pos+4])
		}
		frames = append(frames, RawFrame{
			ID:   string(data[pos : pos+4]),
			Body: data[pos+10 : bodyEnd],
			Size: size,
		})
		pos = bodyEnd
	}
	return version, frames
}

// PictureFrames decodes the attached pictures of path in file order,
// bypassing the code under test.
func PictureFrames(t testing.TB, path string) []id3v2.PictureFrame {
	t.Helper()
	_, frames := ReadFrames(t, path)

	var pics []id3v2.PictureFrame
	for _, f := range frames {
		if f.ID != "APIC" {
			continue
		}
		pic, ok := decodeAPIC(f.Body)
		if !ok {
			t.Fatalf("%s: malformed APIC frame", path)
		}
		pics = append(pics, pic)
	}
	return pics
}

func decodeAPIC(body []byte) (id3v2.PictureFrame, bool) {
	if len(body) < 2 {
		return id3v2.PictureFrame{}, false
	}
	var enc id3v2.Encoding
	switch body[0] {
	case 0:
		enc = id3v2.EncodingISO
	case 1:
		enc = id3v2.EncodingUTF16
	case 2:
		enc = id3v2.EncodingUTF16BE
	case 3:
		enc = id3v2.EncodingUTF8
	default:
		return id3v2.PictureFrame{}, false
	}
	rest := body[1:]

	i := bytes.IndexByte(rest, 0)
	if i < 0 || i+1 >= len(rest) {
		return id3v2.PictureFrame{}, false
	}
	mime := string(rest[:i])
	ptype := rest[i+1]
	rest = rest[i+2:]

	term := enc.TerminationBytes
	end := -1
	for j := 0; j+len(term) <= len(rest); j += len(term) {
		if bytes.Equal(rest[j:j+len(term)], term) {
			end = j
			break
		}
	}
	if end < 0 {
		return id3v2.PictureFrame{}, false
	}
	return id3v2.PictureFrame{
		Encoding:    enc,
		MimeType:    mime,
		PictureType: ptype,
		Description: decodeText(enc, rest[:end]),
		Picture:     rest[end+len(term):],
	}, true
}

func decodeText(enc id3v2.Encoding, b []byte) string {
	if !enc.Equals(id3v2.EncodingUTF16) && !enc.Equals(id3v2.EncodingUTF16BE) {
		return string(b)
	}
	var order binary.ByteOrder = binary.BigEndian
	if enc.Equals(id3v2.EncodingUTF16) && len(b) >= 2 {
		if b[0] == 0xFF && b[1] == 0xFE {
			order = binary.LittleEndian
		}
		b = b[2:]
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, order.Uint16(b[i:]))
	}
	return string(utf16.Decode(units))
}

func unsynchsafe(b []byte) int {
	return int(b[0])<<21 | int(b[1])<<14 | int(b[2])<<7 | int(b[3])
}
