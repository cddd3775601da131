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

package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	logjson "github.com/apex/log/handlers/json"
	loglevel "github.com/apex/log/handlers/level"
	logmulti "github.com/apex/log/handlers/multi"
	"github.com/docker/go-units"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "alias for --log=info",
	},
	cli.StringFlag{
		Name:   "log",
		Usage:  "set the log level (debug, info, [warn], error, fatal)",
		Value:  "warn",
		EnvVar: "UNNEST_LOG",
	},
	cli.StringFlag{
		Name:   "log-file",
		Usage:  "also write every log message (as json) to this file",
		EnvVar: "UNNEST_LOG_FILE",
	},
	cli.StringFlag{
		Name:   "log-file-max-size",
		Usage:  "rotate the log file once it reaches this size",
		Value:  "10MiB",
		EnvVar: "UNNEST_LOG_FILE_MAX_SIZE",
	},
	cli.IntFlag{
		Name:   "log-file-max-backups",
		Usage:  "number of rotated log files to keep (0 keeps all of them)",
		Value:  3,
		EnvVar: "UNNEST_LOG_FILE_MAX_BACKUPS",
	},
	cli.IntFlag{
		Name:   "log-file-max-age",
		Usage:  "remove rotated log files older than this many days (0 disables)",
		EnvVar: "UNNEST_LOG_FILE_MAX_AGE",
	},
}

// parseLogFileSize converts a human-readable size into the number of
// megabytes lumberjack expects, rounding up.
func parseLogFileSize(size string) (int, error) {
	bytes, err := units.RAMInBytes(size)
	if err != nil {
		return 0, fmt.Errorf("parse --log-file-max-size: %w", err)
	}
	if bytes <= 0 {
		return 0, fmt.Errorf("--log-file-max-size must be positive: %q", size)
	}
	return int(math.Ceil(float64(bytes) / units.MiB)), nil
}

// setupLogging configures the global logger from the logging flags. Console
// output goes to stderr at the requested level. If --log-file is set, every
// message down to debug is also recorded there as json. The returned closer
// (which may be nil) must be closed once logging is done.
func setupLogging(ctx *cli.Context, stderr io.Writer) (io.Closer, error) {
	if ctx.GlobalBool("verbose") {
		if ctx.GlobalIsSet("log") {
			return nil, errors.New("--log=* and --verbose are mutually exclusive")
		}
		if err := ctx.GlobalSet("log", "info"); err != nil {
			// Should _never_ be reached.
			return nil, fmt.Errorf("[internal error] failure auto-setting --log=info: %w", err)
		}
	}
	level, err := log.ParseLevel(ctx.GlobalString("log"))
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	console := loglevel.New(logcli.New(stderr), level)

	path := ctx.GlobalString("log-file")
	if path == "" {
		log.SetHandler(console)
		log.SetLevel(level)
		return nil, nil
	}

	maxSize, err := parseLogFileSize(ctx.GlobalString("log-file-max-size"))
	if err != nil {
		return nil, err
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: ctx.GlobalInt("log-file-max-backups"),
		MaxAge:     ctx.GlobalInt("log-file-max-age"),
		Compress:   true,
	}
	log.SetHandler(logmulti.New(console, logjson.New(file)))
	log.SetLevel(log.DebugLevel)
	return file, nil
}
