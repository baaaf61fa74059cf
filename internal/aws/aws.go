// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	profile  string
	region   string
	endpoint string
}

// Option customizes how the S3 client used for cart storage is built.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint such as MinIO
// or LocalStack. Path-style addressing is turned on with it.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// LoadConfig loads AWS SDK v2 config honoring the profile and region options.
func LoadConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// NewS3 loads config and constructs an S3 client from it.
func NewS3(ctx context.Context, opts ...Option) (*s3v2.Client, error) {
	cfg, err := LoadConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3v2.NewFromConfig(cfg, S3Options(opts...)...), nil
}

// S3Options returns the per-client options implied by opts.
func S3Options(opts ...Option) []func(*s3v2.Options) {
	o := apply(opts)
	if o.endpoint == "" {
		return nil
	}
	return []func(*s3v2.Options){
		func(so *s3v2.Options) {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = true
		},
	}
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
