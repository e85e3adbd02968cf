package model

import (
	"errors"
	"time"
)

// Tenant is optional pass-through metadata for the embedding site. Pages may
// reference a tenant but no like/comment flow enforces one.
type Tenant struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	APIKey         *string   `db:"api_key" json:"-"`
	AllowedDomains *string   `db:"allowed_domains" json:"allowed_domains,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CreateTenantRequest provisions tenant metadata for an embedding site.
type CreateTenantRequest struct {
	Name           string  `json:"name"`
	APIKey         *string `json:"api_key,omitempty"`
	AllowedDomains *string `json:"allowed_domains,omitempty"`
}

var ErrTenantNotFound = errors.New("tenant not found")
