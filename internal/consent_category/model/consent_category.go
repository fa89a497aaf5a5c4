/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

// SignalFlag names one gated Consent Mode channel.
type SignalFlag string

const (
	AdStorage         SignalFlag = "ad_storage"
	AnalyticsStorage  SignalFlag = "analytics_storage"
	AdUserData        SignalFlag = "ad_user_data"
	AdPersonalization SignalFlag = "ad_personalization"
)

// AllSignalFlags returns the Consent Mode vocabulary in canonical order.
func AllSignalFlags() []SignalFlag {
	return []SignalFlag{AdStorage, AnalyticsStorage, AdUserData, AdPersonalization}
}

// IsKnownSignalFlag reports whether flag belongs to the Consent Mode vocabulary.
func IsKnownSignalFlag(flag SignalFlag) bool {
	for _, known := range AllSignalFlags() {
		if known == flag {
			return true
		}
	}
	return false
}

// SignalFlagSet is an unordered set of signal flags.
type SignalFlagSet map[SignalFlag]struct{}

// NewSignalFlagSet builds a set from the given flags.
func NewSignalFlagSet(flags ...SignalFlag) SignalFlagSet {
	set := make(SignalFlagSet, len(flags))
	for _, flag := range flags {
		set[flag] = struct{}{}
	}
	return set
}

func (s SignalFlagSet) Add(flags ...SignalFlag) {
	for _, flag := range flags {
		s[flag] = struct{}{}
	}
}

func (s SignalFlagSet) Has(flag SignalFlag) bool {
	_, ok := s[flag]
	return ok
}

// Union returns a new set holding the flags of both sets.
func (s SignalFlagSet) Union(other SignalFlagSet) SignalFlagSet {
	out := make(SignalFlagSet, len(s)+len(other))
	for flag := range s {
		out[flag] = struct{}{}
	}
	for flag := range other {
		out[flag] = struct{}{}
	}
	return out
}

// List returns the flags in canonical order. Flags outside the vocabulary are not listed.
func (s SignalFlagSet) List() []SignalFlag {
	flags := make([]SignalFlag, 0, len(s))
	for _, flag := range AllSignalFlags() {
		if s.Has(flag) {
			flags = append(flags, flag)
		}
	}
	return flags
}

// CookieDeclaration describes one cookie set under a consent category.
type CookieDeclaration struct {
	Name        string `json:"name" yaml:"name"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

// ConsentCategory represents a category of user consent
type ConsentCategory struct {
	CategoryIdentifier string              `json:"category_identifier" yaml:"category_identifier"` // Identifier used in selections
	CategoryName       string              `json:"category_name" yaml:"category_name"`             // Human-readable category name
	Description        string              `json:"description" yaml:"description"`
	Required           bool                `json:"required" yaml:"required"`         // Always granted, never togglable
	SignalFlags        []SignalFlag        `json:"signal_flags" yaml:"signal_flags"` // Flags granted when the category is selected
	Cookies            []CookieDeclaration `json:"cookies,omitempty" yaml:"cookies,omitempty"`
}

// CookieCount is the number of declared cookies, shown as a badge next to the category.
func (c ConsentCategory) CookieCount() int {
	return len(c.Cookies)
}

// FlagSet returns the category's flags as a set.
func (c ConsentCategory) FlagSet() SignalFlagSet {
	return NewSignalFlagSet(c.SignalFlags...)
}

// Clone returns a deep copy of the category.
func (c ConsentCategory) Clone() ConsentCategory {
	clone := c
	clone.SignalFlags = append([]SignalFlag(nil), c.SignalFlags...)
	clone.Cookies = append([]CookieDeclaration(nil), c.Cookies...)
	return clone
}

// ConsentCategoryResponse is the API shape of a category.
type ConsentCategoryResponse struct {
	ConsentCategory
	CookieCount int  `json:"cookie_count"`
	Togglable   bool `json:"togglable"`
}

// ToResponse wraps the category for the API.
func (c ConsentCategory) ToResponse() ConsentCategoryResponse {
	return ConsentCategoryResponse{
		ConsentCategory: c.Clone(),
		CookieCount:     c.CookieCount(),
		Togglable:       !c.Required,
	}
}
