package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/ravshanbek/catalog-api/internal/config"
	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/repository"
)

// PresignedUpload is what the files endpoint returns: the stored metadata
// row plus a time-limited URL the client PUTs the bytes to directly.
type PresignedUpload struct {
	File      *model.File `json:"file"`
	UploadURL string      `json:"uploadUrl"`
}

// FileService hands out presigned S3 PUT URLs for icon/photo uploads and
// records a file row per upload. The service never proxies the bytes.
type FileService struct {
	files *repository.FileRepo
	cfg   appconfig.S3
}

func NewFileService(files *repository.FileRepo, cfg appconfig.S3) *FileService {
	return &FileService{files: files, cfg: cfg}
}

// Enabled reports whether storage settings were configured. When false the
// presign endpoint answers 422 instead of failing deep inside the SDK.
func (s *FileService) Enabled() bool {
	return s.cfg.Region != "" && s.cfg.Bucket != ""
}

// storageKey spreads objects by date so bucket listings stay navigable.
func storageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *FileService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"", // session token not used with static keys
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
	})
	return s3.NewPresignClient(client), nil
}

// PresignUpload generates a storage key, presigns a 15 minute PUT for it
// and persists the file row. The row exists before the upload happens; a
// client that never PUTs leaves a dangling key, same trade-off as an
// orphaned session.
func (s *FileService) PresignUpload(ctx context.Context) (*PresignedUpload, error) {
	if !s.Enabled() {
		return nil, httperr.Unprocessable(map[string]string{"file": "storageNotConfigured"})
	}

	presign, err := s.presignClient(ctx)
	if err != nil {
		log.Printf("files: load aws config: %v", err)
		return nil, httperr.Internal()
	}

	key := storageKey()
	req, err := presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		log.Printf("files: presign put: %v", err)
		return nil, httperr.Internal()
	}

	file, err := s.files.Create(ctx, key)
	if err != nil {
		log.Printf("files: insert row: %v", err)
		return nil, httperr.Internal()
	}
	return &PresignedUpload{File: file, UploadURL: req.URL}, nil
}
