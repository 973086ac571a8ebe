// Package storage provides the Cloudinary-backed implementation of the
// domain's image storage service.
package storage

import (
	"context"
	"io"

	"ecowatch/config"
	"ecowatch/internal/domain/service"
	"ecowatch/internal/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// cloudinaryStorage uploads report evidence images to Cloudinary and serves
// them by secure URL.
type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage is the constructor for cloudinaryStorage.
func NewCloudinaryStorage(cfg *config.Config) (service.ImageStorage, error) {
	if cfg.Cloudinary == nil {
		return nil, errors.New("cloudinary configuration must be provided")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Cloudinary")
	}

	return &cloudinaryStorage{
		cld:    cld,
		folder: cfg.Cloudinary.Folder,
	}, nil
}

// Upload stores the image content and returns the URL at which it is served.
func (s *cloudinaryStorage) Upload(ctx context.Context, content io.Reader, folder string) (string, error) {
	if folder == "" {
		folder = s.folder
	}

	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload image to Cloudinary")
	}

	return result.SecureURL, nil
}
