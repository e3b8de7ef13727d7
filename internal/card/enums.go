/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package card

// Enumerated attribute values use their JSON spelling so the model decodes
// straight from a payload. The Values slices fix the order offered to users.

type Spacing string

const (
	SpacingNone       Spacing = "none"
	SpacingSmall      Spacing = "small"
	SpacingDefault    Spacing = "default"
	SpacingMedium     Spacing = "medium"
	SpacingLarge      Spacing = "large"
	SpacingExtraLarge Spacing = "extraLarge"
	SpacingPadding    Spacing = "padding"
)

var SpacingValues = []Spacing{SpacingNone, SpacingSmall, SpacingDefault, SpacingMedium, SpacingLarge, SpacingExtraLarge, SpacingPadding}

// Pixels is the gap a renderer leaves above an element with this spacing.
func (s Spacing) Pixels() float32 {
	switch s {
	case SpacingNone:
		return 0
	case SpacingSmall:
		return 4
	case SpacingMedium:
		return 12
	case SpacingLarge:
		return 16
	case SpacingExtraLarge:
		return 24
	case SpacingPadding:
		return 15
	default:
		return 8
	}
}

// HorizontalAlignment may be left unset (empty string).
type HorizontalAlignment string

const (
	AlignUnset  HorizontalAlignment = ""
	AlignLeft   HorizontalAlignment = "left"
	AlignCenter HorizontalAlignment = "center"
	AlignRight  HorizontalAlignment = "right"
)

var HorizontalAlignmentValues = []HorizontalAlignment{AlignLeft, AlignCenter, AlignRight}

type Height string

const (
	HeightAuto    Height = "auto"
	HeightStretch Height = "stretch"
)

var HeightValues = []Height{HeightAuto, HeightStretch}

type ImageSize string

const (
	ImageSizeAuto    ImageSize = "auto"
	ImageSizeSmall   ImageSize = "small"
	ImageSizeMedium  ImageSize = "medium"
	ImageSizeLarge   ImageSize = "large"
	ImageSizeStretch ImageSize = "stretch"
)

var ImageSizeValues = []ImageSize{ImageSizeAuto, ImageSizeSmall, ImageSizeMedium, ImageSizeLarge, ImageSizeStretch}

type ImageStyle string

const (
	ImageStyleDefault ImageStyle = "default"
	ImageStylePerson  ImageStyle = "person"
)

var ImageStyleValues = []ImageStyle{ImageStyleDefault, ImageStylePerson}

type TextSize string

const (
	TextSizeSmall      TextSize = "small"
	TextSizeDefault    TextSize = "default"
	TextSizeMedium     TextSize = "medium"
	TextSizeLarge      TextSize = "large"
	TextSizeExtraLarge TextSize = "extraLarge"
)

var TextSizeValues = []TextSize{TextSizeSmall, TextSizeDefault, TextSizeMedium, TextSizeLarge, TextSizeExtraLarge}

// Scale is the line height multiplier relative to the default size.
func (s TextSize) Scale() float32 {
	switch s {
	case TextSizeSmall:
		return 0.85
	case TextSizeMedium:
		return 1.2
	case TextSizeLarge:
		return 1.5
	case TextSizeExtraLarge:
		return 1.85
	default:
		return 1
	}
}

type TextWeight string

const (
	TextWeightLighter TextWeight = "lighter"
	TextWeightDefault TextWeight = "default"
	TextWeightBolder  TextWeight = "bolder"
)

var TextWeightValues = []TextWeight{TextWeightLighter, TextWeightDefault, TextWeightBolder}

type TextColor string

const (
	TextColorDefault   TextColor = "default"
	TextColorDark      TextColor = "dark"
	TextColorLight     TextColor = "light"
	TextColorAccent    TextColor = "accent"
	TextColorGood      TextColor = "good"
	TextColorWarning   TextColor = "warning"
	TextColorAttention TextColor = "attention"
)

var TextColorValues = []TextColor{TextColorDefault, TextColorDark, TextColorLight, TextColorAccent, TextColorGood, TextColorWarning, TextColorAttention}
