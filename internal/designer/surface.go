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

import (
	"slices"

	"cardesigner/internal/geom"
)

// Role tells the main overlay of a peer apart from its separator strip.
type Role int

const (
	RoleMain Role = iota
	RoleSeparator
)

func (r Role) String() string {
	if r == RoleSeparator {
		return "separator"
	}
	return "main"
}

// Region is one positioned overlay rectangle owned by a peer.
type Region struct {
	PeerID   string
	Role     Role
	Bounds   geom.Rect
	Visible  bool
	Selected bool
	Hover    bool
	// Badge is the label drawn on the main region.
	Badge string
}

// Surface displays the rendered card markup.
type Surface interface {
	SetContent(markup string)
}

// OverlaySurface holds the overlay regions drawn above the rendered card.
type OverlaySurface interface {
	Attach(r *Region)
	Detach(r *Region)
	Clear()
}

// HostBuffer is an in-memory Surface. It counts how often its content was
// replaced.
type HostBuffer struct {
	content string
	renders int
}

func (h *HostBuffer) SetContent(markup string) {
	h.content = markup
	h.renders++
}

func (h *HostBuffer) Content() string { return h.content }

// Renders reports how many times SetContent was called.
func (h *HostBuffer) Renders() int { return h.renders }

// Layer is an in-memory OverlaySurface keeping regions in attach order.
type Layer struct {
	regions []*Region
}

func (l *Layer) Attach(r *Region) {
	if r == nil || slices.Contains(l.regions, r) {
		return
	}
	l.regions = append(l.regions, r)
}

func (l *Layer) Detach(r *Region) {
	if i := slices.Index(l.regions, r); i >= 0 {
		l.regions = slices.Delete(l.regions, i, i+1)
	}
}

func (l *Layer) Clear() { l.regions = nil }

// Regions returns the attached regions, bottom first.
func (l *Layer) Regions() []*Region { return slices.Clone(l.regions) }

// Len returns the number of attached regions.
func (l *Layer) Len() int { return len(l.regions) }
