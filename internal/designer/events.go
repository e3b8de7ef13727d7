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

// EventType identifies what a peer is reporting.
type EventType int

const (
	// EventSelectionChanged is published after a peer's selected flag flipped.
	EventSelectionChanged EventType = iota
	// EventChanged is published after a peer mutated its node.
	EventChanged
	// EventRemoved is published after a peer's node left the document and
	// its overlay was detached.
	EventRemoved
	// EventPeerCreated carries a new child peer produced by a command.
	EventPeerCreated
)

func (t EventType) String() string {
	switch t {
	case EventSelectionChanged:
		return "selection-changed"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventPeerCreated:
		return "peer-created"
	}
	return "unknown"
}

// Event is what a peer publishes to its sink.
type Event struct {
	Type EventType
	Peer *Peer
	// Child is set for EventPeerCreated only.
	Child *Peer
}

// Sink receives peer events. A peer has exactly one sink, assigned by the
// designer that wires it.
type Sink func(Event)
