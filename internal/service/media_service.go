package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/lotcast/lotcast/configs"
)

// MediaService resolves stored image keys to URLs the platform APIs can
// fetch. Images live in a private R2 bucket, so keys are presigned at
// publish time.
type MediaService interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}

type mediaService struct {
	config config.Config
}

func NewMediaService(cfg config.Config) MediaService {
	return &mediaService{config: cfg}
}

func (m *mediaService) r2Client() (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(m.config.R2.AccessKey, m.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", m.config.R2.AccountID))
	}), nil
}

func (m *mediaService) ResolveURL(ctx context.Context, key string) (string, error) {
	// Already a fetchable URL.
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}

	client, err := m.r2Client()
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(client)
	presigned, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.config.R2.BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(24*time.Hour))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return presigned.URL, nil
}
