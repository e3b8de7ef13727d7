/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package card is the document model edited by the designer: a tree of
// content elements with attached actions, parsed from and serialized to the
// Adaptive Card JSON format. Elements carry a kind tag so callers can dispatch
// on an enumerated value instead of dynamic type checks.
package card

// Kind tags a content element type.
type Kind int

const (
	KindUnknown Kind = iota
	KindAdaptiveCard
	KindContainer
	KindColumnSet
	KindColumn
	KindTextBlock
	KindImage
	KindActionSet
	KindFactSet
	KindTextInput
	KindDateInput
)

var kindNames = [...]string{
	KindUnknown:      "Unknown",
	KindAdaptiveCard: "AdaptiveCard",
	KindContainer:    "Container",
	KindColumnSet:    "ColumnSet",
	KindColumn:       "Column",
	KindTextBlock:    "TextBlock",
	KindImage:        "Image",
	KindActionSet:    "ActionSet",
	KindFactSet:      "FactSet",
	KindTextInput:    "Input.Text",
	KindDateInput:    "Input.Date",
}

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Kinds lists every known element kind except KindUnknown.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := KindAdaptiveCard; int(k) < len(kindNames); k++ {
		out = append(out, k)
	}
	return out
}

// KindOf maps a JSON type name to its kind; unrecognised names yield KindUnknown.
func KindOf(typeName string) Kind {
	for k, n := range kindNames {
		if n == typeName && Kind(k) != KindUnknown {
			return Kind(k)
		}
	}
	return KindUnknown
}

// ActionKind tags an action type.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionOpenURL
	ActionShowCard
	ActionHTTP
	ActionSubmit
)

var actionNames = [...]string{
	ActionUnknown:  "Action.Unknown",
	ActionOpenURL:  "Action.OpenUrl",
	ActionShowCard: "Action.ShowCard",
	ActionHTTP:     "Action.Http",
	ActionSubmit:   "Action.Submit",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionNames) {
		return actionNames[ActionUnknown]
	}
	return actionNames[k]
}

// ActionKinds lists every known action kind except ActionUnknown.
func ActionKinds() []ActionKind {
	out := make([]ActionKind, 0, len(actionNames)-1)
	for k := ActionOpenURL; int(k) < len(actionNames); k++ {
		out = append(out, k)
	}
	return out
}

// ActionKindOf maps a JSON action type name to its kind.
func ActionKindOf(typeName string) ActionKind {
	for k, n := range actionNames {
		if n == typeName && ActionKind(k) != ActionUnknown {
			return ActionKind(k)
		}
	}
	return ActionUnknown
}
