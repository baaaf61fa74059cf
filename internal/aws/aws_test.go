// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Options(t *testing.T) {
	assert.Empty(t, S3Options(WithRegion("us-east-1")))

	fns := S3Options(WithEndpoint("http://localhost:9000"))
	require.Len(t, fns, 1)

	var so s3v2.Options
	fns[0](&so)
	require.NotNil(t, so.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *so.BaseEndpoint)
	assert.True(t, so.UsePathStyle)
}

func TestLoadConfigRegion(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	t.Setenv("AWS_PROFILE", "")

	cfg, err := LoadConfig(context.Background(), WithRegion("eu-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-2", cfg.Region)
}
