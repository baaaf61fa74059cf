// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders cart listings as a text table, JSON, YAML or the raw
// slot value, after --filter, --attrs and --sort have been applied.
package output
