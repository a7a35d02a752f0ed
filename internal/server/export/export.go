// Package export uploads full archive snapshots to S3-compatible object
// storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
	sc "github.com/kalajat/archive/internal/server/config"
)

// putObjectAPI is the slice of the S3 client the exporter needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Exporter serializes the current snapshot and stores it under a dated key.
type Exporter struct {
	config *sc.Config
	log    logging.Logger

	newClient func(ctx context.Context) (putObjectAPI, error) // test seam
}

func NewExporter(cfg *sc.Config, log logging.Logger) *Exporter {
	e := &Exporter{
		config: cfg,
		log:    log.With("module", "exporter"),
	}
	e.newClient = e.s3Client
	return e
}

// GetRandomStorageKey builds a dated, collision-free object key.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("exports/%d/%02d/%02d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (e *Exporter) s3Client(ctx context.Context) (putObjectAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(e.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.config.S3RootUser,
			e.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(e.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return client, nil
}

// Export uploads entries as a single JSON document and returns its key.
func (e *Exporter) Export(ctx context.Context, entries []models.Entry) (string, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	client, err := e.newClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	bucket := e.config.S3Bucket
	key := GetRandomStorageKey()
	contentType := "application/json"

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	e.log.Info(ctx, "snapshot exported", "key", key, "entries", len(entries))
	return key, nil
}
