package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) error
	Download(ctx context.Context, objectName string) ([]byte, error)
	Exists(ctx context.Context, objectName string) (bool, error)
}
