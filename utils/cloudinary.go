package utils

import (
	"detailing/config"
	"detailing/services/storage"
)

// Cloudinary returns a Cloudinary-backed image store built from AppConfig.
func Cloudinary() (storage.ImageStore, error) {
	cfg := config.AppConfig
	store, err := storage.NewCloudinaryStoreFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		return nil, err
	}
	return store, nil
}
