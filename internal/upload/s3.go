package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader implements Uploader on top of an S3 bucket with public-read
// objects.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	region   string

	// now is swappable for deterministic object keys in tests.
	now func() time.Time
}

// NewS3Uploader resolves AWS credentials from the default chain.
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		now:      time.Now,
	}, nil
}

// Upload stores the file and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, file File, category, ownerPath string) (string, error) {
	key := u.objectKey(file.Filename, category, ownerPath)

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, url.PathEscape(key)), nil
}

// objectKey builds <category>/<ownerPath>/<base>_<timestamp>[.<ext>] so
// repeated uploads of the same filename never collide.
func (u *S3Uploader) objectKey(filename, category, ownerPath string) string {
	stamp := u.now().Format("20060102_150405")

	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	name := base + "_" + stamp + ext
	return path.Join(category, ownerPath, name)
}
