package contracts

import (
	"context"
	"io"
)

type Storage interface {
	UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error)
	GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string) error
}
