// SPDX-License-Identifier: Apache-2.0
/*
 * unnest: collapse redundantly nested directories
 * Copyright (C) 2026 The unnest Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is the cli implementation of unnest.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/apex/log"
	"github.com/mattn/go-colorable"
	"github.com/urfave/cli"

	"github.com/unnest/unnest"
	"github.com/unnest/unnest/collapse"
	"github.com/unnest/unnest/internal/funchelpers"
	"github.com/unnest/unnest/internal/runlock"
)

const usage = `collapse redundantly nested directories

   Every directory under the root which has the same name as its parent has
   its contents merged into the parent, and is then removed. Chains such as
   "root/A/A/A" are collapsed into "root/A" in a single run. If no root is
   given on the command-line, it is read from stdin.`

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Main is the underlying main() implementation. You can call this directly as
// though it were the command-line arguments of the unnest binary (this is
// needed for unnest's integration test hacks you can find in main_test.go).
func Main(args []string) error {
	return run(args, streams{
		stdin:  os.Stdin,
		stdout: colorable.NewColorableStdout(),
		stderr: colorable.NewColorableStderr(),
	})
}

func newApp(s streams) *cli.App {
	app := cli.NewApp()
	app.Name = "unnest"
	app.Usage = usage
	app.ArgsUsage = "[root]"
	app.Version = unnest.FullVersion()
	app.Writer = s.stdout
	app.ErrWriter = s.stderr

	policy := collapse.PolicySkip
	app.Flags = append([]cli.Flag{
		cli.GenericFlag{
			Name:   "policy",
			Usage:  "what to do when an entry already exists in the parent (skip, overwrite, error)",
			Value:  &policy,
			EnvVar: "UNNEST_POLICY",
		},
		cli.BoolFlag{
			Name:   "merge-dirs",
			Usage:  "merge colliding directories entry-by-entry rather than applying --policy to them",
			EnvVar: "UNNEST_MERGE_DIRS",
		},
		cli.StringFlag{
			Name:   "lock-dir",
			Usage:  "directory to keep run lock files in (defaults to the temporary directory)",
			EnvVar: "UNNEST_LOCK_DIR",
			Hidden: true,
		},
		cli.StringFlag{
			Name:   "cpu-profile",
			Usage:  "profile unnest during execution and output it to a file",
			Hidden: true,
		},
	}, logFlags...)

	var logFile io.Closer
	app.Before = func(ctx *cli.Context) error {
		var err error
		if logFile, err = setupLogging(ctx, s.stderr); err != nil {
			return err
		}

		if path := ctx.GlobalString("cpu-profile"); path != "" {
			fh, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("opening cpu-profile path: %w", err)
			}
			if err := pprof.StartCPUProfile(fh); err != nil {
				return fmt.Errorf("start cpu-profile: %w", err)
			}
		}
		return nil
	}

	app.After = func(*cli.Context) (Err error) {
		pprof.StopCPUProfile()
		if logFile != nil {
			defer funchelpers.VerifyClose(&Err, logFile)
		}
		return nil
	}

	app.Action = func(ctx *cli.Context) error {
		return collapseAction(ctx, s, policy)
	}
	return app
}

func run(args []string, s streams) error {
	err := newApp(s).Run(args)
	if err != nil {
		// The tree cannot be restructured without write access to it, so make
		// the most common cause of failures a bit more obvious.
		if errors.Is(err, os.ErrPermission) {
			log.Warn("unnest encountered a permission error: do you have write access to the whole tree?")
		}
		log.Debugf("%+v", err)
	}
	return err
}

func collapseAction(ctx *cli.Context, s streams, policy collapse.MergePolicy) (Err error) {
	var root string
	switch ctx.NArg() {
	case 0:
		var err error
		if root, err = promptRoot(s.stdin, s.stdout); err != nil {
			return err
		}
	case 1:
		root = ctx.Args().First()
	default:
		return fmt.Errorf("too many arguments: expected at most one root, got %d", ctx.NArg())
	}

	validRoot, err := unnest.ValidateRoot(nil, root)
	switch {
	case errors.Is(err, unnest.ErrEmptyRoot):
		log.Warn("the root directory path must not be empty")
		return err
	case errors.Is(err, unnest.ErrRootNotFound):
		log.WithField("root", root).Warn("the root directory does not exist")
		return err
	case err != nil:
		return err
	}

	lock, err := runlock.Acquire(ctx.GlobalString("lock-dir"), validRoot)
	if err != nil {
		return err
	}
	defer funchelpers.VerifyClose(&Err, lock)

	result, err := unnest.Collapse(validRoot, unnest.Options{
		Policy:           policy,
		MergeDirectories: ctx.GlobalBool("merge-dirs"),
		Logger:           log.Log,
	})
	if result != nil {
		report(result)
	}
	if err != nil {
		return fmt.Errorf("collapse %s: %w", validRoot, err)
	}
	return nil
}

// report logs a summary of the run, and every entry which a merge left
// behind.
func report(result *collapse.Result) {
	for _, path := range result.Orphaned {
		log.WithField("path", path).Warn("entry could not be merged into its parent and was left in place")
	}
	for _, path := range result.Discarded {
		log.WithField("path", path).Warn("entry could not be merged into its parent and was removed")
	}
	log.WithFields(log.Fields{
		"chains":       result.Chains,
		"files_moved":  result.FilesMoved,
		"dirs_moved":   result.DirsMoved,
		"dirs_removed": result.DirsRemoved,
		"overwritten":  result.Overwritten,
		"orphaned":     len(result.Orphaned),
		"discarded":    len(result.Discarded),
	}).Info("done")
}

func main() {
	if err := Main(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}
