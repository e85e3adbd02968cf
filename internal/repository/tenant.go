package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"likebar/internal/model"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, name string, apiKey, allowedDomains *string) (*model.Tenant, error) {
	query := `
		INSERT INTO tenants (id, name, api_key, allowed_domains)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, api_key, allowed_domains, active, created_at
	`
	var tenant model.Tenant
	err := r.db.GetContext(ctx, &tenant, query, uuid.NewString(), name, apiKey, allowedDomains)
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*model.Tenant, error) {
	query := `
		SELECT id, name, api_key, allowed_domains, active, created_at
		FROM tenants
		WHERE api_key = $1 AND active
	`
	var tenant model.Tenant
	err := r.db.GetContext(ctx, &tenant, query, apiKey)
	if err == sql.ErrNoRows {
		return nil, model.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &tenant, nil
}
