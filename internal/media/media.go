// Package media hands out short-lived S3 URLs for avatar and demo uploads.
// The object store is external infrastructure; the API only brokers access.
package media

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/MuseLink-app/muselink-backend/config"
)

var (
	ErrUnsupportedKind        = errors.New("unsupported upload kind")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrTooLarge               = errors.New("upload exceeds size limit")
	ErrInvalidKey             = errors.New("invalid media key")
)

// Upload kinds
const (
	KindAvatar = "avatar"
	KindDemo   = "demo"
)

var allowedContentTypes = map[string]map[string]bool{
	KindAvatar: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	KindDemo: {
		"audio/mpeg":  true,
		"audio/wav":   true,
		"audio/x-wav": true,
		"audio/flac":  true,
		"audio/mp4":   true,
	},
}

type Service struct {
	presigner *s3.PresignClient
	bucket    string
	uploadTTL time.Duration
	maxSize   int64
}

func NewService(ctx context.Context, cfg config.MediaConfig) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("MEDIA_BUCKET is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &Service{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		uploadTTL: cfg.UploadTTL,
		maxSize:   cfg.MaxUploadSize,
	}, nil
}

// UploadTicket is a presigned PUT the client uses to push the file directly
// to the bucket.
type UploadTicket struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUpload validates the request and presigns a PUT for it.
func (s *Service) CreateUpload(ctx context.Context, userID, kind, contentType string, size int64) (*UploadTicket, error) {
	allowed, ok := allowedContentTypes[kind]
	if !ok {
		return nil, ErrUnsupportedKind
	}
	if !allowed[contentType] {
		return nil, ErrUnsupportedContentType
	}
	if size <= 0 || size > s.maxSize {
		return nil, ErrTooLarge
	}

	key := s.objectKey(userID, kind)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(s.uploadTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &UploadTicket{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: time.Now().UTC().Add(s.uploadTTL),
	}, nil
}

// keyShape matches the only layouts this service ever writes. Anything else
// is not ours to presign.
var keyShape = regexp.MustCompile(`^users/[0-9a-f-]{36}/(avatar|demos/[0-9a-f-]{36})$`)

// DownloadURL presigns a GET for a stored object. Only keys in the service's
// own layout are accepted; profile media is public to any signed-in user.
func (s *Service) DownloadURL(ctx context.Context, key string) (string, error) {
	if !keyShape.MatchString(key) {
		return "", ErrInvalidKey
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.uploadTTL))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

func (s *Service) objectKey(userID, kind string) string {
	if kind == KindAvatar {
		// One avatar per user; re-uploads overwrite.
		return fmt.Sprintf("users/%s/avatar", userID)
	}
	return fmt.Sprintf("users/%s/demos/%s", userID, uuid.NewString())
}
