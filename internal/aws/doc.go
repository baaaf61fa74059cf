// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws builds the AWS SDK v2 clients used by the s3 cart storage
// backend.
package aws
