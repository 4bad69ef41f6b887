// Package s3 stores each slot as one JSON object in an S3 compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
)

// Config holds explicit construction parameters. Credentials come from the
// default AWS chain.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional; set for MinIO and other compatible services
	PathStyle bool
	Prefix    string
}

// SlotStore maps slot names to object keys <prefix><slot>.json.
type SlotStore struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ portsrepo.SlotStore = (*SlotStore)(nil)

// NewSlotStore creates an S3 client from cfg.
func NewSlotStore(ctx context.Context, cfg Config) (*SlotStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &SlotStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *SlotStore) key(slot string) string { return s.prefix + slot + ".json" }

func (s *SlotStore) Load(ctx context.Context, slot string) ([]byte, error) {
	key := s.key(slot)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.ErrSlotAbsent
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()
	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return payload, nil
}

func (s *SlotStore) Save(ctx context.Context, slot string, payload []byte) error {
	key := s.key(slot)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (s *SlotStore) Delete(ctx context.Context, slot string) error {
	key := s.key(slot)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
