// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for smb-search.
package types

// BusinessRecord is one business returned by a provider. Website and Phone
// are empty when the provider does not know them. Records carry no identity
// beyond their position in a result list.
type BusinessRecord struct {
	// Name is the business name as returned by the provider.
	Name string `json:"name" yaml:"name"`

	// Website is the business website URL, or empty.
	Website string `json:"website" yaml:"website"`

	// Phone is the business phone number in provider formatting, or empty.
	Phone string `json:"phone" yaml:"phone"`
}
