// Package dto provides data transfer objects for the credentials HTTP layer.
package dto

// CreateCredentialRequest represents the API request to create a credential
type CreateCredentialRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	IsActive bool   `json:"is_active"`
	IsFree   bool   `json:"is_free"`
}

// UpdateCredentialRequest represents the API request to update a credential.
// An empty api_key keeps the stored key unchanged.
type UpdateCredentialRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	IsActive bool   `json:"is_active"`
	IsFree   bool   `json:"is_free"`
}
