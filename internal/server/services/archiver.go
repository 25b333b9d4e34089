package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/metastore/internal/models"
	sc "github.com/dmitrijs2005/metastore/internal/server/config"
)

// Archiver persists committed document revisions outside the primary store.
type Archiver interface {
	ArchiveRevision(ctx context.Context, project string, doc *models.Document) error
}

// NoopArchiver is used when no archive bucket is configured.
type NoopArchiver struct{}

func (NoopArchiver) ArchiveRevision(ctx context.Context, project string, doc *models.Document) error {
	return nil
}

// S3Archiver writes every committed revision as a JSON object to an
// S3-compatible bucket, keyed by project and fingerprint, giving a full
// revision history of the document.
type S3Archiver struct {
	config *sc.Config
}

func NewS3Archiver(config *sc.Config) *S3Archiver {
	return &S3Archiver{config: config}
}

// NewArchiver picks the S3 implementation when a bucket is configured and
// the noop one otherwise.
func NewArchiver(config *sc.Config) Archiver {
	if config.S3Bucket == "" {
		return NoopArchiver{}
	}
	return NewS3Archiver(config)
}

func (a *S3Archiver) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(a.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.config.S3RootUser,
			a.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func (a *S3Archiver) ArchiveRevision(ctx context.Context, project string, doc *models.Document) error {
	client, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding revision: %w", err)
	}

	bucket := a.config.S3Bucket
	key := fmt.Sprintf("projects/%s/revisions/%s.json", project, doc.Fingerprint)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}
