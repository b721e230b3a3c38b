package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"photomind/config"
)

type StorageAPI interface {
	// GetFullPath returns the local file name for path
	GetFullPath(path string) string
	// EnsureLocalFile makes GetFullPath(path) readable, ReleaseLocalFile frees it afterwards
	EnsureLocalFile(path string) error
	ReleaseLocalFile(path string)
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetBucket() *Bucket
}

func New(bucket *Bucket) (StorageAPI, error) {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket), nil
	case StorageTypeS3:
		return NewS3Storage(bucket), nil
	}
	return nil, fmt.Errorf("storage type %d unavailable for bucket %q", bucket.StorageType, bucket.Name)
}

// BucketFromConfig describes where uploaded images go: S3 if S3_BUCKET is set, IMAGES_DIR otherwise
func BucketFromConfig() *Bucket {
	if config.S3_BUCKET != "" {
		return &Bucket{
			Name:          config.S3_BUCKET,
			StorageType:   StorageTypeS3,
			Path:          config.S3_PREFIX,
			Region:        config.S3_REGION,
			Endpoint:      config.S3_ENDPOINT,
			AuthDetails:   config.S3_CREDENTIALS,
			SSEEncryption: config.S3_SSE,
		}
	}
	return &Bucket{
		Name:        "images",
		StorageType: StorageTypeFile,
		Path:        config.IMAGES_DIR,
	}
}

func Init() StorageAPI {
	bucket := BucketFromConfig()
	if err := bucket.Create(); err != nil {
		panic(err)
	}
	storage, err := New(bucket)
	if err != nil {
		panic(err)
	}
	log.Printf("Image storage: %s", bucket)
	return storage
}
