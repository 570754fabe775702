// Package storage uploads logo images to an S3-compatible object store
// (DigitalOcean Spaces, MinIO, or S3 itself) and hands back public URLs for
// the owning entity to keep.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Config holds the S3-compatible endpoint configuration
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// Enabled reports whether enough configuration is present to upload.
func (c Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// Client handles logo uploads
type Client struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// NewClient creates a new storage client
func NewClient(config Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
		cdnURL:   config.CDNURL,
	}, nil
}

// UploadLogo stores a logo under a prefix per entity type
// ("college_logos", "department_logos", "partnership_logos") and returns
// its public URL. The key gets a UUID so re-uploads never collide.
func (c *Client) UploadLogo(ctx context.Context, prefix, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), path.Ext(filename))

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	if c.cdnURL != "" {
		return fmt.Sprintf("%s/%s", c.cdnURL, key), nil
	}
	return fmt.Sprintf("https://%s.%s/%s", c.bucket, c.endpoint, key), nil
}

// DeleteLogo removes a previously uploaded object by key.
func (c *Client) DeleteLogo(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete logo: %w", err)
	}
	return nil
}
