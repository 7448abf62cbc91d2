package storage

import (
	"context"
	"time"
)

type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, prefix, filename string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error

	GetFile(ctx context.Context, fileURL string) ([]byte, error)

	GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}

// Префиксы объектов в бакете по типу контента.
const (
	PrefixDoctors = "doctors"
	PrefixNews    = "news"
	PrefixSlider  = "slider"
)
