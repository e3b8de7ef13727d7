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

func newInspectCmd(a *app) *cobra.Command {
	var selectPeer int
	cmd := &cobra.Command{
		Use:   "inspect [card.json]",
		Short: "List the designer peers of a card",
		Long:  `Renders the card (the built-in sample when no file is given) and prints one line per peer: index, badge, rendered bounds and commands.`,
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
			writeTree(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().IntVar(&selectPeer, "select", -1, "mark the peer with this index as selected")
	return cmd
}

func newSheetCmd(a *app) *cobra.Command {
	var peer int
	cmd := &cobra.Command{
		Use:   "sheet [card.json]",
		Short: "Print the property sheet of a peer",
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
			if err := p.BuildPropertySheet().Write(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write sheet: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&peer, "peer", 0, "peer index as listed by inspect")
	return cmd
}
