package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements ImageStore on Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a CloudinaryStore that uploads into folder.
func NewCloudinaryStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	return &CloudinaryStore{cld: cld, folder: folder}
}

// NewCloudinaryStoreFromParams builds the Cloudinary client from credentials.
func NewCloudinaryStoreFromParams(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return NewCloudinaryStore(cld, folder), nil
}

// UploadImage uploads an image into the configured folder and returns its identifier and URL.
func (s *CloudinaryStore) UploadImage(ctx context.Context, file io.Reader) (*UploadedImage, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		ResourceType:   "image",
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("storage: cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("storage: no public ID returned")
	}
	return &UploadedImage{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
		Width:    result.Width,
		Height:   result.Height,
	}, nil
}

// DeleteImage deletes an image given its public ID.
func (s *CloudinaryStore) DeleteImage(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"})
	if err != nil {
		return fmt.Errorf("storage: failed to delete image: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("storage: unexpected destroy result %q", result.Result)
	}
	return nil
}
