/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package designer

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts designer activity. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Renders  prometheus.Counter
	Peers    prometheus.Gauge
	Commands *prometheus.CounterVec
	Removals *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cardesigner",
			Name:      "card_renders_total",
			Help:      "Number of times the card was rendered into the host surface.",
		}),
		Peers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cardesigner",
			Name:      "live_peers",
			Help:      "Number of live peers.",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardesigner",
			Name:      "peer_commands_total",
			Help:      "Peer commands executed, by command name.",
		}, []string{"command"}),
		Removals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardesigner",
			Name:      "peer_removals_total",
			Help:      "Peer removal attempts, by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.Peers, m.Commands, m.Removals)
	}
	return m
}

func (m *Metrics) rendered() {
	if m != nil {
		m.Renders.Inc()
	}
}

func (m *Metrics) livePeers(n int) {
	if m != nil {
		m.Peers.Set(float64(n))
	}
}

func (m *Metrics) commandExecuted(name string) {
	if m != nil {
		m.Commands.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) removal(ok bool) {
	if m == nil {
		return
	}
	outcome := "refused"
	if ok {
		outcome = "removed"
	}
	m.Removals.WithLabelValues(outcome).Inc()
}
