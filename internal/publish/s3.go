// Package publish uploads the catalogue to S3, where the mobile app reads it.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/storage"
)

// PutObjectAPI is the subset of the S3 client used by Uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds configuration for the S3 uploader.
type S3Config struct {
	Bucket       string
	Key          string
	Region       string
	Profile      string // AWS profile to use
	CacheControl string
}

// UploadResult describes an uploaded catalogue.
type UploadResult struct {
	Bucket     string    `json:"bucket"`
	Key        string    `json:"key"`
	ETag       string    `json:"etag"`
	Size       int64     `json:"size"`
	Events     int       `json:"events"`
	UploadedAt time.Time `json:"uploaded_at"`
	PublicURL  string    `json:"public_url"`
}

// Uploader writes catalogues to one S3 object.
type Uploader struct {
	client PutObjectAPI
	cfg    S3Config
	region string
	now    func() time.Time
}

// NewUploader creates an Uploader with the default AWS credential chain,
// or the named shared profile.
func NewUploader(ctx context.Context, cfg S3Config) (*Uploader, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewUploaderWithClient(s3.NewFromConfig(awsCfg), cfg, awsCfg.Region), nil
}

// NewUploaderWithClient creates an Uploader around an existing client.
func NewUploaderWithClient(client PutObjectAPI, cfg S3Config, region string) *Uploader {
	return &Uploader{client: client, cfg: cfg, region: region, now: time.Now}
}

// Upload encodes events the same way storage writes them and puts the
// result at the configured key.
func (u *Uploader) Upload(ctx context.Context, events []*event.Event) (*UploadResult, error) {
	if u.cfg.Bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured")
	}

	var buf bytes.Buffer
	if err := storage.Encode(&buf, events); err != nil {
		return nil, fmt.Errorf("encoding catalogue: %w", err)
	}
	size := int64(buf.Len())

	// Ensure key doesn't start with /
	key := strings.TrimPrefix(u.cfg.Key, "/")
	if key == "" {
		key = "events.json"
	}
	uploadedAt := u.now().UTC()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"event-count": fmt.Sprintf("%d", len(events)),
			"upload-time": uploadedAt.Format(time.RFC3339),
		},
	}
	if u.cfg.CacheControl != "" {
		input.CacheControl = aws.String(u.cfg.CacheControl)
	}

	out, err := u.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("uploading to s3://%s/%s: %w", u.cfg.Bucket, key, err)
	}

	result := &UploadResult{
		Bucket:     u.cfg.Bucket,
		Key:        key,
		Size:       size,
		Events:     len(events),
		UploadedAt: uploadedAt,
		PublicURL:  u.PublicURL(key),
	}
	if out != nil && out.ETag != nil {
		result.ETag = strings.Trim(*out.ETag, `"`)
	}
	return result, nil
}

// PublicURL returns the virtual-hosted URL of key.
func (u *Uploader) PublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if u.region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.region, key)
}
