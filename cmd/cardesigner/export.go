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

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		out        string
		format     string
		selectPeer int
	)
	cmd := &cobra.Command{
		Use:   "export [card.json]",
		Short: "Write a snapshot of the design surface as SVG, PNG or PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(fileArg(args))
			if err != nil {
				return err
			}
			if selectPeer >= 0 {
				p, err := s.PeerAt(selectPeer)
				if err != nil {
					return err
				}
				s.Designer().Select(p)
			}
			if err := s.Export(out, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.Flags().StringVar(&format, "format", "", "svg, png or pdf; defaults to the file extension, then the config")
	cmd.Flags().IntVar(&selectPeer, "select", -1, "select this peer so its overlay shows")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
