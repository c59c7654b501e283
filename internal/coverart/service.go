package coverart

import (
	"context"
	"image"
	"time"

	"github.com/handiism/id3-image/internal/audio"
	"github.com/handiism/id3-image/internal/config"
	"github.com/handiism/id3-image/internal/http"
	ioutils "github.com/handiism/id3-image/internal/io"
	"github.com/handiism/id3-image/internal/model"
	"github.com/rs/zerolog"
)

// Service runs embed, extract and remove against MP3 files.
type Service struct {
	settings   *config.Settings
	images     *ioutils.ImageService
	httpClient *http.Client
	log        zerolog.Logger
}

// NewService creates a Service. A nil settings uses config.DefaultSettings().
func NewService(settings *config.Settings, logger zerolog.Logger) *Service {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Service{
		settings:   settings,
		images:     ioutils.NewImageService(settings.JPEGQuality),
		httpClient: http.NewClient(time.Duration(settings.HTTPTimeout * float64(time.Second))),
		log:        logger,
	}
}

// Settings returns the settings the service was created with.
func (s *Service) Settings() *config.Settings {
	return s.settings
}

// Embed adds the image at imageSource to musicPath as a front cover.
//
// imageSource is a file path or an http(s) URL. The image is decoded,
// optionally downscaled to Settings.CoverArtMaxSize, and always re-encoded
// as JPEG. Existing pictures are kept; repeated embeds accumulate.
func (s *Service) Embed(ctx context.Context, musicPath, imageSource string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tag, err := s.readTag(musicPath)
	if err != nil {
		return err
	}
	defer tag.Close()

	img, format, err := s.loadImage(ctx, imageSource)
	if err != nil {
		return model.NewError(model.ErrImageDecode, imageSource, err)
	}
	s.log.Debug().Str("image", imageSource).Str("format", format).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).
		Int("quality", s.images.Quality()).Msg("decoded image")

	if size := s.settings.CoverArtMaxSize; size > 0 {
		img = s.images.Resize(img, size, size)
	}

	data, err := s.images.EncodeJPEG(img)
	if err != nil {
		return model.NewError(model.ErrImageDecode, imageSource, err)
	}

	tag.AddPicture(model.NewCoverPicture(data))

	if err := tag.Write(s.settings.ID3Version); err != nil {
		return err
	}

	s.log.Info().Str("file", musicPath).Int("bytes", len(data)).Msg("embedded cover art")
	return nil
}

// Extract saves the first picture of musicPath to imagePath.
//
// Pictures are taken in frame order regardless of picture type. The output
// format follows the extension of imagePath and an existing file is
// overwritten.
func (s *Service) Extract(ctx context.Context, musicPath, imagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tag, err := s.readTag(musicPath)
	if err != nil {
		return err
	}
	pics := tag.Pictures()
	tag.Close()

	if len(pics) == 0 {
		return model.NewError(model.ErrNoImageFound, musicPath, nil)
	}
	pic := pics[0]
	s.log.Debug().Str("file", musicPath).Stringer("picture", pic).Int("pictures", len(pics)).Msg("selected picture")

	img, _, err := s.images.Decode(pic.Data)
	if err != nil {
		return model.NewError(model.ErrImageDecode, musicPath, err)
	}

	if err := s.images.SaveFile(img, imagePath); err != nil {
		return model.NewError(model.ErrImageWrite, imagePath, err)
	}

	s.log.Info().Str("file", musicPath).Str("image", imagePath).Msg("extracted cover art")
	return nil
}

// Remove deletes every picture from musicPath and returns how many were
// removed.
//
// The tag is rewritten even when there was nothing to remove.
func (s *Service) Remove(ctx context.Context, musicPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tag, err := s.readTag(musicPath)
	if err != nil {
		return 0, err
	}
	defer tag.Close()

	removed := tag.RemovePictures()

	if err := tag.Write(s.settings.ID3Version); err != nil {
		return 0, err
	}

	s.log.Info().Str("file", musicPath).Int("removed", removed).Msg("removed cover art")
	return removed, nil
}

// Pictures lists the pictures embedded in musicPath without changing it.
func (s *Service) Pictures(musicPath string) ([]model.Picture, error) {
	tag, err := s.readTag(musicPath)
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	return tag.Pictures(), nil
}

func (s *Service) readTag(musicPath string) (*audio.TagFile, error) {
	tag, err := audio.ReadTag(musicPath, s.log)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("file", musicPath).Int("version", tag.Version()).
		Int("frames", tag.FrameCount()).Bool("partial", tag.Partial()).Msg("read tag")
	return tag, nil
}

func (s *Service) loadImage(ctx context.Context, source string) (image.Image, string, error) {
	if ioutils.IsURL(source) {
		data, err := s.httpClient.DownloadBytes(ctx, source)
		if err != nil {
			return nil, "", err
		}
		return s.images.Decode(data)
	}
	return s.images.DecodeFile(source)
}
