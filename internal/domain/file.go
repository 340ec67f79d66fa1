package domain

import (
	"context"
)

// FileRepository defines the interface for media storage operations
type FileRepository interface {
	// Upload saves a file and returns its access URL
	Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error)
	// Delete removes a previously uploaded file
	Delete(ctx context.Context, filename string) error
}
