package storage

import (
	"context"
	"io"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, bucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}

func (m *minioStorage) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	object, err := m.MinioClient.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, bucketName)
	}

	// GetObject is lazy; Stat surfaces a missing object before the caller reads.
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, exceptions.ErrMinioGetObject(err, bucketName)
	}

	return object, nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	err := m.MinioClient.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioRemoveObject(err, bucketName)
	}
	return nil
}
