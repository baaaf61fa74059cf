// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client the S3 store calls.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 stores each key as one object under Bucket/Prefix.
type S3 struct {
	client S3API
	Bucket string
	Prefix string
}

func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{client: client, Bucket: bucket, Prefix: prefix}
}

// ObjectKey returns the object key for key.
func (s *S3) ObjectKey(key string) string {
	return s.Prefix + url.PathEscape(key)
}

func (s *S3) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.ObjectKey(key)),
	})
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get s3://%s/%s: %w", s.Bucket, s.ObjectKey(key), err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read s3://%s/%s: %w", s.Bucket, s.ObjectKey(key), err)
	}
	return string(b), true, nil
}

func (s *S3) Set(ctx context.Context, key, value string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(s.ObjectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.Bucket, s.ObjectKey(key), err)
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.ObjectKey(key)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", s.Bucket, s.ObjectKey(key), err)
	}
	return nil
}

// Clear deletes every object under Prefix. An empty Prefix would mean the
// whole bucket, so it is refused.
func (s *S3) Clear(ctx context.Context) error {
	if s.Prefix == "" {
		return fmt.Errorf("%w: refusing to clear bucket %s without --prefix", ErrMissingSetting, s.Bucket)
	}

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: awsv2.String(s.Bucket),
		Prefix: awsv2.String(s.Prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list s3://%s/%s: %w", s.Bucket, s.Prefix, err)
		}
		for _, obj := range page.Contents {
			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: awsv2.String(s.Bucket),
				Key:    obj.Key,
			}); err != nil {
				return fmt.Errorf("failed to delete s3://%s/%s: %w", s.Bucket, awsv2.ToString(obj.Key), err)
			}
			log.Debugf("removed s3://%s/%s", s.Bucket, awsv2.ToString(obj.Key))
		}
	}
	return nil
}

func (s *S3) Close() error { return nil }

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
