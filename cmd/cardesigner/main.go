/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Command cardesigner inspects and edits card payloads through the designer:
// it lists peers, runs their commands, edits properties, validates, exports
// snapshots and keeps a library of saved cards.
package main

import (
	"fmt"
	"os"
	"strings"

	"cardesigner/internal/crash"
	applog "cardesigner/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// initialize structured logging using environment defaults; the root
	// command re-initializes it from the config file
	applog.Init(applog.FromEnv())
	a := newApp()
	defer crash.Recover(&crash.State{Command: strings.Join(args, " "), Card: a.payload})

	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
