package storage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	Name          string
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string
	Endpoint      string // Custom S3 endpoint (MinIO, etc), path-style addressing is used then
	AuthDetails   string // In case of S3 bucket - "key:secret", empty for the default credential chain
	SSEEncryption string
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

func (b *Bucket) String() string {
	if b.IsS3() {
		return "s3://" + b.Name + "/" + strings.Trim(b.Path, "/")
	}
	return b.Path
}

// Create pre-creates the location on disk, S3 buckets are expected to exist
func (b *Bucket) Create() error {
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

// GetRemotePath returns the S3 key for path
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	if key, secret, ok := strings.Cut(b.AuthDetails, ":"); ok {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(key, secret, ""))
	}
	return s3.New(session.Must(session.NewSession(cfg)))
}

// CreateS3DownloadURI pre-signs a GET request for path
func (b *Bucket) CreateS3DownloadURI(svc *s3.S3, path string, expiry time.Duration) (string, error) {
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(b.GetRemotePath(path)),
	})
	url, err := req.Presign(expiry)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", path, err)
	}
	return url, nil
}
