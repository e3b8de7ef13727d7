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

import "cardesigner/internal/card"

// Typed gives a variant the wrapped element at its concrete type.
type Typed[T card.Element] struct {
	node T
}

func (t Typed[T]) Element() T { return t.node }

// newTypedPeer builds a peer whose variant embeds ElementPeer and Typed[T].
func newTypedPeer[T card.Element](d *Designer, node T, build func(ElementPeer, Typed[T]) Variant) *Peer {
	p := newPeer(d)
	p.variant = build(ElementPeer{peer: p, element: node}, Typed[T]{node: node})
	return p
}
