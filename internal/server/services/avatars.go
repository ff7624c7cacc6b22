package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bmic/internal/common"
	sc "github.com/dmitrijs2005/bmic/internal/server/config"
	"github.com/google/uuid"
)

// PresignExpiry is how long an upload URL stays valid.
const PresignExpiry = 15 * time.Minute

// Seams over the AWS SDK constructors.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	newS3PresignClient    = func(c *s3.Client) *s3.PresignClient { return s3.NewPresignClient(c) }
	presignPutObject      = func(ctx context.Context, pc *s3.PresignClient, in *s3.PutObjectInput, expires time.Duration) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, s3.WithPresignExpires(expires))
	}
	timeNow = time.Now
)

// PresignedAvatar tells the client where to PUT the image and where it will
// be served from afterwards.
type PresignedAvatar struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	Key       string `json:"key"`
}

type AvatarService struct {
	config *sc.Config
}

func NewAvatarService(config *sc.Config) *AvatarService {
	return &AvatarService{config: config}
}

func GetRandomStorageKey(ext string) string {
	d := timeNow().UTC()
	return fmt.Sprintf("avatars/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// Presign issues a PUT URL for a new avatar object. contentType must be an
// image type; ext is an optional file extension with or without the dot.
func (s *AvatarService) Presign(ctx context.Context, contentType, ext string) (*PresignedAvatar, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", common.ErrorValidation, contentType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(normalizeExt(ext, contentType))

	req, err := presignPutObject(ctx, presignClient, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &PresignedAvatar{
		UploadURL: req.URL,
		AvatarURL: s.config.AvatarBaseURL() + "/" + key,
		Key:       key,
	}, nil
}

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// normalizeExt returns a lower-case ".ext" made of letters and digits only,
// falling back to the extension for contentType.
func normalizeExt(ext, contentType string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	valid := ext != "" && len(ext) <= 5
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			valid = false
			break
		}
	}
	if valid {
		return "." + ext
	}
	return extByType[contentType]
}
