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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardesigner/internal/card"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [card.json]",
		Short: "Check a card payload against the card schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(card.DefaultPayload)
			if path := fileArg(args); path != "" {
				var err error
				if data, err = os.ReadFile(path); err != nil {
					return fmt.Errorf("read card: %w", err)
				}
			}
			w := cmd.OutOrStdout()
			if err := card.Validate(data); err != nil {
				var verr *card.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems {
						fmt.Fprintf(w, "  - %s\n", p)
					}
				}
				return err
			}
			if _, err := card.Parse(data); err != nil {
				return err
			}
			fmt.Fprintln(w, "card is valid")
			return nil
		},
	}
}
