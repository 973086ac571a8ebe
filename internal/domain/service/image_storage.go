package service

import (
	"context"
	"io"
)

// ImageStorage stores report evidence images and returns a public URL.
// The concrete implementation uploads to Cloudinary.
type ImageStorage interface {
	// Upload stores the image content under the given folder and returns
	// the URL at which it is served.
	Upload(ctx context.Context, content io.Reader, folder string) (string, error)
}
