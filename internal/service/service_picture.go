package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"golang.org/x/image/draw"
)

const (
	// ThumbnailSize bounds both sides of a stored profile picture.
	ThumbnailSize = 125

	// MaxPictureBytes is the largest accepted upload.
	MaxPictureBytes = 4 << 20

	maxPicturePixels = 40_000_000
	jpegQuality      = 90
)

var allowedPictureExtensions = map[string]bool{
	".jpg": true,
	".png": true,
}

type pictureService struct {
	storage store.PictureStorage
	logger  *logger.Logger
}

func NewPictureService(storage store.PictureStorage, logger *logger.Logger) PictureService {
	return &pictureService{
		storage: storage,
		logger:  logger,
	}
}

// SaveProfilePicture decodes an uploaded jpg or png, shrinks it to fit
// ThumbnailSize x ThumbnailSize keeping its aspect ratio and stores it under
// a random name whose extension matches the encoded format, so a JPEG sent
// as x.png is stored as .jpg. Returns the stored name.
func (s *pictureService) SaveProfilePicture(ctx context.Context, filename string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPictureExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedPicture, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxPictureBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read picture: %w", err)
	}
	if len(data) > MaxPictureBytes {
		return "", ErrPictureTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Info().Err(err).Str("filename", filename).Msg("upload is not a picture")
		return "", fmt.Errorf("%w: %w", ErrUnsupportedPicture, err)
	}
	if format != "jpeg" && format != "png" {
		return "", fmt.Errorf("%w: format %q", ErrUnsupportedPicture, format)
	}
	if cfg.Width*cfg.Height > maxPicturePixels {
		return "", ErrPictureTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedPicture, err)
	}

	var (
		buf         bytes.Buffer
		contentType string
		storedExt   string
	)
	thumb := Thumbnail(img, ThumbnailSize)
	switch format {
	case "png":
		contentType, storedExt = "image/png", ".png"
		err = png.Encode(&buf, thumb)
	default:
		contentType, storedExt = "image/jpeg", ".jpg"
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode picture: %w", err)
	}

	random, err := utils.RandomHex(8)
	if err != nil {
		return "", err
	}
	name := random + storedExt

	if err := s.storage.SavePicture(ctx, name, contentType, buf.Bytes()); err != nil {
		return "", err
	}

	log.Info().Str("picture", name).Msg("profile picture stored")
	return name, nil
}

// DeleteProfilePicture removes a stored picture. The bundled default
// picture is never removed.
func (s *pictureService) DeleteProfilePicture(ctx context.Context, name string) error {
	if name == "" || name == models.DefaultImageFile {
		return nil
	}
	if err := s.storage.DeletePicture(ctx, name); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("picture", name).Msg("profile picture removed")
	return nil
}

func (s *pictureService) PictureURL(name string) string {
	return s.storage.PictureURL(name)
}

// Thumbnail scales src down so that neither side exceeds size. Pictures
// that already fit are returned unchanged.
func Thumbnail(src image.Image, size int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return src
	}

	nw, nh := size, size
	if w >= h {
		nh = max(1, (h*size+w/2)/w)
	} else {
		nw = max(1, (w*size+h/2)/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
