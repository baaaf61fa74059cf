// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cartctl/internal/command"
	"github.com/staranto/cartctl/internal/config"
	mylog "github.com/staranto/cartctl/internal/log"
	"github.com/staranto/cartctl/internal/version"
)

var ctx = context.Background()

// setRegex matches a bare @set argument. Values such as a --slot of
// "@GoMarketPlace:cart" do not match.
var setRegex = regexp.MustCompile(`^@[A-Za-z0-9_-]+$`)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands a @set argument, or @defaults when none is given,
// into the flags configured under <command>.<set> and places them right after
// the command so anything typed on the command line still wins.
func mangleArguments(args []string) []string {
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	rest := make([]string, 0, len(args)-2)
	set := "defaults"
	found := false
	for _, a := range args[2:] {
		if !found && setRegex.MatchString(a) {
			set = a[1:]
			found = true
			continue
		}
		rest = append(rest, a)
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := append(preamble, expanded...) //nolint:gocritic
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
