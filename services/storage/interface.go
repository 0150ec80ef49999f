package storage

import "context"

// ImageStore stores an uploaded image and returns a stable URL to embed
// as an announcement's imageUrl. The rest of the system treats that URL
// as an opaque string.
type ImageStore interface {
	Upload(ctx context.Context, localFilePath, folder string) (string, error)
}
