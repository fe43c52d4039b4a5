package storage

import (
	"context"
	"io"
)

// UploadedImage identifies a stored image.
type UploadedImage struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageStore defines the storage operations used for service images.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}
