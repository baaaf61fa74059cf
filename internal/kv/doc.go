// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package kv provides the string key-value stores a cart can persist to:
// a directory of files, SQLite, S3, Redis, or process memory.
package kv
