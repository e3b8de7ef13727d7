/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardesigner/internal/session"
	"cardesigner/internal/sheet"
)

// finish prints the tree after an edit and writes the card when out is set.
func finish(cmd *cobra.Command, a *app, s *session.Session, out string, metrics bool) error {
	w := cmd.OutOrStdout()
	writeTree(w, s)
	if out != "" {
		if err := s.SaveAs(out); err != nil {
			return err
		}
		a.log.Info("card written", slog.String("path", out))
		fmt.Fprintf(w, "written to %s\n", out)
	}
	if metrics {
		return writeMetrics(w, a.reg)
	}
	return nil
}

func newExecCmd(a *app) *cobra.Command {
	var (
		peer    int
		command string
		out     string
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "exec [card.json]",
		Short: "Run a peer command such as Remove or Add TextBlock inside",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(fileArg(args))
			if err != nil {
				return err
			}
			p, err := s.PeerAt(peer)
			if err != nil {
				return err
			}
			if _, ok := p.Command(command); !ok {
				return fmt.Errorf("peer %d (%s) has no command %q", peer, p.BadgeText(), command)
			}
			// Remove reports refusal only through its return value
			if strings.EqualFold(command, "Remove") {
				if !p.Remove() {
					return fmt.Errorf("%s refused removal", p.BadgeText())
				}
			} else {
				p.Execute(command)
			}
			return finish(cmd, a, s, out, metrics)
		},
	}
	cmd.Flags().IntVar(&peer, "peer", 0, "peer index as listed by inspect")
	cmd.Flags().StringVar(&command, "command", "", "command name (case-insensitive)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the edited card to this file")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print designer metrics afterwards")
	_ = cmd.MarkFlagRequired("command")
	return cmd
}

// holds reports whether a field that showed before already carried value,
// so setting it again is a no-op rather than a rejection.
func holds(in sheet.Input, before, value string) bool {
	if _, ok := in.(*sheet.Toggle); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		return err == nil && strconv.FormatBool(b) == before
	}
	return before == value
}

func newSetCmd(a *app) *cobra.Command {
	var (
		peer  int
		field string
		value string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "set [card.json]",
		Short: "Edit one property of a peer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(fileArg(args))
			if err != nil {
				return err
			}
			p, err := s.PeerAt(peer)
			if err != nil {
				return err
			}
			sh := p.BuildPropertySheet()
			in, ok := sh.Lookup(field)
			if !ok {
				return fmt.Errorf("peer %d (%s) has no field %q; fields: %v", peer, p.BadgeText(), field, sh.Labels())
			}
			// An accepted edit publishes changed, which marks the session dirty.
			before := in.Value()
			in.SetValue(value)
			if !s.Dirty() && !holds(in, before, value) {
				return fmt.Errorf("value %q rejected by field %q", value, field)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", field, in.Value())
			return finish(cmd, a, s, out, false)
		},
	}
	cmd.Flags().IntVar(&peer, "peer", 0, "peer index as listed by inspect")
	cmd.Flags().StringVar(&field, "field", "", "property label (case-insensitive)")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the edited card to this file")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
