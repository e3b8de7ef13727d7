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
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"cardesigner/internal/card"
	"cardesigner/internal/library"
)

func newLibraryCmd(a *app) *cobra.Command {
	var dbPath string
	openLib := func() (*library.Library, error) {
		path := dbPath
		if path == "" {
			var err error
			if path, err = a.cfg.LibraryPath(); err != nil {
				return nil, err
			}
		}
		return library.Open(path)
	}
	withLib := func(fn func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			lib, err := openLib()
			if err != nil {
				return err
			}
			defer lib.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			return fn(ctx, cmd, lib, args)
		}
	}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Keep saved cards with their revisions",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "library database; defaults to library.db next to the config")

	save := &cobra.Command{
		Use:   "save NAME [card.json]",
		Short: "Store a card as the next revision of NAME",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error {
			data := []byte(card.DefaultPayload)
			if len(args) > 1 {
				var err error
				if data, err = os.ReadFile(args[1]); err != nil {
					return fmt.Errorf("read card: %w", err)
				}
			}
			rev, err := lib.Save(ctx, args[0], data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s revision %d (%d bytes)\n", rev.Name, rev.Number, rev.Size)
			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved cards",
		Args:  cobra.NoArgs,
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, _ []string) error {
			entries, err := lib.List(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tREVISIONS\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name, e.Revisions, e.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		}),
	}

	var rev int
	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a saved card (the newest revision unless --rev is set)",
		Args:  cobra.ExactArgs(1),
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error {
			var data []byte
			var err error
			if rev > 0 {
				data, err = lib.LoadRevision(ctx, args[0], rev)
			} else {
				data, err = lib.Load(ctx, args[0])
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}),
	}
	show.Flags().IntVar(&rev, "rev", 0, "revision number")

	revisions := &cobra.Command{
		Use:   "revisions NAME",
		Short: "List the revisions of a saved card",
		Args:  cobra.ExactArgs(1),
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error {
			revs, err := lib.Revisions(ctx, args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "REV\tSAVED\tBYTES")
			for _, r := range revs {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", r.Number, r.SavedAt.Local().Format(time.DateTime), r.Size)
			}
			return tw.Flush()
		}),
	}

	var keep int
	prune := &cobra.Command{
		Use:   "prune NAME",
		Short: "Drop all but the newest revisions of a saved card",
		Args:  cobra.ExactArgs(1),
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error {
			n, err := lib.Prune(ctx, args[0], keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d revisions of %s\n", n, args[0])
			return nil
		}),
	}
	prune.Flags().IntVar(&keep, "keep", 5, "revisions to keep")

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a saved card and its revisions",
		Args:  cobra.ExactArgs(1),
		RunE: withLib(func(ctx context.Context, cmd *cobra.Command, lib *library.Library, args []string) error {
			if err := lib.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	cmd.AddCommand(save, list, show, revisions, prune, del)
	return cmd
}
