// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"github.com/staranto/cartctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands. The
// config is loaded once, before any flags are built, so flag value sources
// know which file to read.
type Meta struct {
	Config config.Type
}
