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
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"cardesigner/internal/card"
	"cardesigner/internal/config"
	"cardesigner/internal/designer"
	applog "cardesigner/internal/log"
	"cardesigner/internal/session"
)

// app is the state shared by all commands of one invocation.
type app struct {
	cfg     config.AppConfig
	reg     *prometheus.Registry
	metrics *designer.Metrics
	sess    *session.Session
	log     *slog.Logger
}

func newApp() *app {
	reg := prometheus.NewRegistry()
	return &app{
		cfg:     config.Defaults(),
		reg:     reg,
		metrics: designer.NewMetrics(reg),
		log:     applog.WithComponent("cli"),
	}
}

// payload returns the open card for crash autosaves.
func (a *app) payload() []byte {
	if a.sess == nil || a.sess.Card() == nil {
		return nil
	}
	b, _ := a.sess.Payload()
	return b
}

// open loads the card at path (the sample card when empty) into a fresh
// session.
func (a *app) open(path string) (*session.Session, error) {
	s, err := session.New(a.cfg, nil,
		designer.WithLogger(applog.WithComponent("designer")),
		designer.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Open(path); err != nil {
		return nil, err
	}
	a.sess = s
	a.log.Debug("card opened", slog.String("path", path))
	return s, nil
}

func newRootCmd(a *app) *cobra.Command {
	var configPath, logLevel string
	root := &cobra.Command{
		Use:           "cardesigner",
		Short:         "Design Adaptive Cards from the command line",
		Long:          `cardesigner loads a card payload into the designer, shows its peers and property sheets, runs peer commands and writes the result back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if configPath != "" {
				a.cfg, err = config.LoadFile(configPath)
			} else {
				a.cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if logLevel != "" {
				a.cfg.Logging.Level = strings.ToLower(logLevel)
			}
			applog.Init(a.cfg.LogOptions())
			a.log = applog.WithComponent("cli")
			a.log.Debug("command start", slog.String("cmd", cmd.CommandPath()))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml or toml); defaults to the per-user config")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newInspectCmd(a),
		newSheetCmd(a),
		newExecCmd(a),
		newSetCmd(a),
		newValidateCmd(),
		newExportCmd(a),
		newLibraryCmd(a),
		newUICmd(a),
		newVersionCmd(),
	)
	return root
}

// fileArg returns the optional card file argument.
func fileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// writeTree prints one line per live peer: index, selection mark, badge
// indented by depth, rendered bounds and commands.
func writeTree(w io.Writer, s *session.Session) {
	for i, p := range s.Designer().Peers() {
		mark := " "
		if p.IsSelected() {
			mark = "*"
		}
		bounds := "-"
		if r := p.ReferenceRenderedElement(); r != nil {
			bounds = r.Bounds.String()
		}
		var names []string
		for _, c := range p.Commands() {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "%3d %s %s%-*s %s [%s]\n", i, mark, strings.Repeat("  ", depthOf(p.Node())),
			16, p.BadgeText(), bounds, strings.Join(names, ", "))
	}
}

func depthOf(node any) int {
	switch n := node.(type) {
	case card.Element:
		d := 0
		for e := n.Parent(); e != nil; e = e.Parent() {
			d++
		}
		return d
	case card.Action:
		if e, ok := n.Owner().(card.Element); ok {
			return depthOf(e) + 1
		}
	}
	return 0
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
