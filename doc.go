// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// cartctl is the main package for the cartctl command line tool. It wires the
// CLI, expands @set arguments from the config file, and serves as the entry
// point.
package main
