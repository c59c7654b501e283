// Package audio reads and writes the ID3v2 tag of MP3 files.
//
// # Tag Gateway
//
// ReadTag opens the tag of an MP3 file, TagFile exposes its picture
// frames, and Write serializes the whole tag back into the file:
//
//	tag, err := audio.ReadTag("song.mp3", logger)
//	if err != nil {
//	    return err // *model.Error with kind model.ErrTagRead
//	}
//	defer tag.Close()
//
//	tag.AddPicture(model.NewCoverPicture(jpegBytes))
//	err = tag.Write(audio.DefaultVersion)
//
// The file content is sniffed before parsing, so passing an image or any
// other non-MP3 file fails with model.ErrTagRead instead of silently
// gaining a tag.
//
// # Corrupted Tags
//
// When the tag does not parse, ReadTag logs a warning and retries with
// only attached picture frames parsed; every other frame is skipped by its
// declared size. If the retry works the TagFile reports Partial() and
// writing it back keeps only the recovered pictures. If the header itself
// is unusable the read fails.
package audio
