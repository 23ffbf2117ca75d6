package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/tastebud-ai/backend/config"
)

// ShareService uploads exported PDFs to S3 so a stable public URL can be
// handed out instead of the raw bytes. When S3 is not configured the
// service is disabled and handlers fall back to direct download.
type ShareService struct {
	s3cfg  *config.S3Config
	region string
}

func NewShareService(s3cfg *config.S3Config, region string) *ShareService {
	return &ShareService{s3cfg: s3cfg, region: region}
}

// Enabled reports whether uploads can be performed.
func (s *ShareService) Enabled() bool {
	return s.s3cfg != nil && s.s3cfg.Client != nil
}

// UploadPDF stores the document under a fresh key and returns its public
// URL.
func (s *ShareService) UploadPDF(ctx context.Context, fileName string, data []byte) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("shared storage is not configured")
	}

	key := fmt.Sprintf("exports/%s/%s", uuid.New().String(), fileName)

	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3cfg.BucketName, s.region, key), nil
}
