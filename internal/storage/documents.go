// Package storage hands out presigned S3 URLs for claim supporting documents.
// Files never pass through the API server: the browser uploads straight to
// the bucket and the claim keeps only the object key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AllowedExtensions are the document types a lecturer may attach.
var AllowedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

var ErrUnsupportedFileType = errors.New("unsupported file type, allowed: " + strings.Join(AllowedExtensions, " "))

type DocumentStore struct {
	bucket  string
	expires time.Duration
	presign *s3.PresignClient
	now     func() time.Time
}

func NewDocumentStore(ctx context.Context, cfg *config.Config) (*DocumentStore, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.BaseEndpoint)
			// MinIO and most self-hosted gateways only serve path-style URLs
			o.UsePathStyle = true
		}
	})

	return &DocumentStore{
		bucket:  cfg.S3.Bucket,
		expires: time.Duration(cfg.S3.PresignExpiry) * time.Minute,
		presign: s3.NewPresignClient(client),
		now:     time.Now,
	}, nil
}

// CheckFileName returns the lower-cased extension of name when it is allowed.
func CheckFileName(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", ErrUnsupportedFileType
}

// NewObjectKey places documents under the owning lecturer and upload month.
func NewObjectKey(lecturerID int64, now time.Time, ext string) string {
	return fmt.Sprintf("claims/%d/%04d/%02d/%s%s", lecturerID, now.Year(), now.Month(), uuid.New(), ext)
}

// UploadURL reserves an object key for originalName and returns a presigned
// PUT URL for it along with the reference to store on the claim.
func (s *DocumentStore) UploadURL(ctx context.Context, lecturerID int64, originalName string) (*domain.DocumentRef, string, error) {
	ext, err := CheckFileName(originalName)
	if err != nil {
		return nil, "", err
	}

	key := NewObjectKey(lecturerID, s.now(), ext)
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return nil, "", err
	}

	ref := &domain.DocumentRef{
		Path:         key,
		OriginalName: filepath.Base(strings.TrimSpace(originalName)),
	}
	return ref, req.URL, nil
}

// DownloadURL returns a presigned GET URL that serves the document under its
// original file name.
func (s *DocumentStore) DownloadURL(ctx context.Context, ref *domain.DocumentRef) (string, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.Path),
	}
	if ref.OriginalName != "" {
		in.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", ref.OriginalName))
	}

	req, err := presignGetObject(s.presign, ctx, in, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// OwnedBy reports whether key was issued to lecturerID by UploadURL.
func OwnedBy(key string, lecturerID int64) bool {
	return strings.HasPrefix(key, fmt.Sprintf("claims/%d/", lecturerID))
}
