package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryImageStore uploads images to Cloudinary and hands back the
// secure delivery URL.
type CloudinaryImageStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryImageStore initializes the Cloudinary-backed store.
func NewCloudinaryImageStore(cloudName, apiKey, apiSecret string) (*CloudinaryImageStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryImageStore{cld: cld}, nil
}

// Upload uploads a file into the given folder and returns its URL.
func (s *CloudinaryImageStore) Upload(ctx context.Context, localFilePath, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: no delivery URL returned")
	}
	return result.SecureURL, nil
}
