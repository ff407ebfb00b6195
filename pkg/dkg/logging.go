// SPDX-License-Identifier: Apache-2.0
//
// Copyright 2025 The bip-frost-dkg Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dkg

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is the package logger. It is disabled unless BIP_DKG_LOG is set;
// embedding applications may replace it. Protocol steps log indices and
// message shapes at debug level and never log secret material.
var Logger = newLogger()

func newLogger() zerolog.Logger {
	level := zerolog.Disabled
	if os.Getenv("BIP_DKG_LOG") != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(logout).
		With().Timestamp().Logger().
		Level(level)
}
