package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.S3.Region = "us-east-1"
	cfg.S3.AccessKey = "minioadmin"
	cfg.S3.SecretKey = "minioadmin"
	cfg.S3.BaseEndpoint = "http://127.0.0.1:9000"
	cfg.S3.Bucket = "cmcs-documents"
	cfg.S3.PresignExpiry = 15
	return cfg
}

func TestCheckFileName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantExt string
		wantErr bool
	}{
		{"pdf", "timesheet.pdf", ".pdf", false},
		{"upper case", "SCAN.JPEG", ".jpeg", false},
		{"word", "report.docx", ".docx", false},
		{"executable", "payload.exe", "", true},
		{"no extension", "README", "", true},
		{"double extension", "invoice.pdf.exe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := CheckFileName(tt.file)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestNewObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	a := NewObjectKey(2, now, ".pdf")
	b := NewObjectKey(2, now, ".pdf")

	assert.True(t, strings.HasPrefix(a, "claims/2/2025/03/"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
}

func TestNewDocumentStoreAppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg)
	}

	store, err := NewDocumentStore(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, "cmcs-documents", store.bucket)
	assert.Equal(t, 15*time.Minute, store.expires)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewDocumentStoreConfigError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("boom")
	}

	_, err := NewDocumentStore(context.Background(), testConfig())
	require.Error(t, err)
}

func TestUploadURL(t *testing.T) {
	origPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPut })

	var captured *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		captured = in
		return &v4.PresignedHTTPRequest{URL: "https://example.test/put"}, nil
	}

	store := &DocumentStore{
		bucket:  "cmcs-documents",
		expires: time.Minute,
		now:     func() time.Time { return time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC) },
	}

	ref, url, err := store.UploadURL(context.Background(), 2, "  hours.PDF ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/put", url)
	assert.Equal(t, "hours.PDF", ref.OriginalName)
	assert.True(t, strings.HasPrefix(ref.Path, "claims/2/2025/11/"))
	assert.True(t, strings.HasSuffix(ref.Path, ".pdf"))

	require.NotNil(t, captured)
	assert.Equal(t, "cmcs-documents", *captured.Bucket)
	assert.Equal(t, ref.Path, *captured.Key)
}

func TestUploadURLRejectsExtension(t *testing.T) {
	origPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPut })

	called := false
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		called = true
		return &v4.PresignedHTTPRequest{}, nil
	}

	store := &DocumentStore{bucket: "b", expires: time.Minute, now: time.Now}
	_, _, err := store.UploadURL(context.Background(), 2, "script.sh")
	require.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.False(t, called)
}

func TestDownloadURL(t *testing.T) {
	origGet := presignGetObject
	t.Cleanup(func() { presignGetObject = origGet })

	var captured *s3.GetObjectInput
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		captured = in
		return &v4.PresignedHTTPRequest{URL: "https://example.test/get"}, nil
	}

	store := &DocumentStore{bucket: "cmcs-documents", expires: time.Minute, now: time.Now}
	url, err := store.DownloadURL(context.Background(), &domain.DocumentRef{Path: "claims/2/2025/11/x.pdf", OriginalName: "hours.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/get", url)
	assert.Equal(t, "claims/2/2025/11/x.pdf", *captured.Key)
	require.NotNil(t, captured.ResponseContentDisposition)
	assert.Contains(t, *captured.ResponseContentDisposition, "hours.pdf")
}

func TestDownloadURLError(t *testing.T) {
	origGet := presignGetObject
	t.Cleanup(func() { presignGetObject = origGet })

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	store := &DocumentStore{bucket: "b", expires: time.Minute, now: time.Now}
	_, err := store.DownloadURL(context.Background(), &domain.DocumentRef{Path: "k"})
	require.Error(t, err)
}

func TestOwnedBy(t *testing.T) {
	key := NewObjectKey(2, time.Now(), ".pdf")
	assert.True(t, OwnedBy(key, 2))
	assert.False(t, OwnedBy(key, 22))
	assert.False(t, OwnedBy("claims/20/2025/01/x.pdf", 2))
}
