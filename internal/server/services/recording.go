package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guardianeye/guardianeye/internal/common"
	sc "github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// downloadLinkValidity is how long a presigned recording URL stays usable.
const downloadLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type RecordingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewRecordingService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *RecordingService {
	return &RecordingService{db: db, repomanager: m, config: config, now: time.Now}
}

func (s *RecordingService) List(ctx context.Context) ([]*models.Recording, error) {
	return s.repomanager.Recordings(s.db).List(ctx)
}

// ListByCamera returns the recordings of one camera. A malformed id matches
// nothing.
func (s *RecordingService) ListByCamera(ctx context.Context, cameraID string) ([]*models.Recording, error) {
	if _, err := uuid.Parse(cameraID); err != nil {
		return []*models.Recording{}, nil
	}
	return s.repomanager.Recordings(s.db).ListByCamera(ctx, cameraID)
}

func (s *RecordingService) Create(ctx context.Context, rec *models.Recording) (*models.Recording, error) {
	if _, err := uuid.Parse(rec.CameraID); err != nil {
		return nil, fmt.Errorf("unknown camera %s: %w", rec.CameraID, common.ErrorValidation)
	}
	return s.repomanager.Recordings(s.db).Create(ctx, rec)
}

// DownloadLink returns a URL for fetching the recording file. Public http(s)
// URLs are returned unchanged; anything else is treated as an object key and
// presigned against the configured bucket.
func (s *RecordingService) DownloadLink(ctx context.Context, id string) (*models.DownloadLink, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	rec, err := s.repomanager.Recordings(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if isPublicURL(rec.FileURL) {
		return &models.DownloadLink{URL: rec.FileURL}, nil
	}

	url, err := s.GetPresignedGetUrl(ctx, strings.TrimPrefix(rec.FileURL, "/"))
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(downloadLinkValidity).UTC()
	return &models.DownloadLink{URL: url, ExpiresAt: &expiresAt}, nil
}

func isPublicURL(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (s *RecordingService) storageConfigured() bool {
	return s.config.S3Bucket != "" && s.config.S3BaseEndpoint != ""
}

func (s *RecordingService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

// GetPresignedGetUrl presigns a GET for key in the recordings bucket.
func (s *RecordingService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	if !s.storageConfigured() {
		return "", common.ErrStorageNotConfigured
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(downloadLinkValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
