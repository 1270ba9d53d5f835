package storage

import (
	"strings"

	"github.com/google/uuid"
	"github.com/timmy/calsnap/internal/config"
)

// mealPrefix is the key namespace for confirmed meal photos.
const mealPrefix = "meals/"

// NewStorage creates the photo store for the configuration.
// Parameters:
//   - cfg: storage section of the application config; must be Enabled.
//   - proxyPrefix: URL prefix that serves objects through the API when no public URL is set.
// Returns:
//   - *S3Storage: initialized storage client.
//   - error: non-nil if the client cannot be created.
func NewStorage(cfg *config.StorageConfig, proxyPrefix string) (*S3Storage, error) {
	s3cfg := &S3Config{
		Type:        StorageType(cfg.Type),
		Endpoint:    cfg.Endpoint,
		AccessKey:   cfg.AccessKey,
		SecretKey:   cfg.SecretKey,
		UseSSL:      cfg.UseSSL,
		Bucket:      cfg.Bucket,
		Region:      cfg.Region,
		PublicURL:   cfg.PublicURL,
		ProxyPrefix: proxyPrefix,
	}
	// Auto-detect storage type if not specified
	if s3cfg.Type == "" {
		s3cfg.Type = detectStorageType(cfg.Endpoint)
	}

	return NewS3Storage(s3cfg)
}

// MealImageKey returns a fresh key for a meal photo with the given extension.
func MealImageKey(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return mealPrefix + uuid.NewString() + "." + ext
}

// detectStorageType attempts to detect the storage type from the endpoint
func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
