/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package sheet

import (
	"fmt"
	"io"
	"strings"
)

// Entry is a labelled input of a sheet.
type Entry struct {
	Label string
	Input Input
}

// Sheet is an ordered form of labelled inputs under a header.
type Sheet struct {
	Header  string
	entries []Entry
}

func New() *Sheet { return &Sheet{} }

func (s *Sheet) Add(label string, in Input) {
	s.entries = append(s.entries, Entry{Label: label, Input: in})
}

func (s *Sheet) Entries() []Entry { return s.entries }

func (s *Sheet) Len() int { return len(s.entries) }

// Labels returns the entry labels in order.
func (s *Sheet) Labels() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Label
	}
	return out
}

// Lookup finds the first entry with the given label, ignoring case.
func (s *Sheet) Lookup(label string) (Input, bool) {
	for _, e := range s.entries {
		if strings.EqualFold(e.Label, label) {
			return e.Input, true
		}
	}
	return nil, false
}

// Write prints the sheet as plain text, one entry per line.
func (s *Sheet) Write(w io.Writer) error {
	if s.Header != "" {
		if _, err := fmt.Fprintln(w, s.Header); err != nil {
			return err
		}
	}
	for _, e := range s.entries {
		in := e.Input
		line := fmt.Sprintf("  %-22s [%s] %q", e.Label, in.Type(), in.Value())
		if p := in.Placeholder(); p != "" && in.Value() == "" {
			line += fmt.Sprintf(" (%s)", p)
		}
		if c, ok := in.(*ChoiceSet); ok {
			vals := make([]string, 0, len(c.Choices()))
			for _, ch := range c.Choices() {
				vals = append(vals, ch.Value)
			}
			line += " one of " + strings.Join(vals, "|")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
