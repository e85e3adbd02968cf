package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"likebar/internal/httputil"
	"likebar/internal/model"
	"likebar/internal/repository"
)

// TenantHandler provisions tenant metadata. Tenancy is pass-through: pages
// initialized with a matching X-Api-Key get tagged, nothing is enforced.
type TenantHandler struct {
	tenantRepo repository.TenantRepository
}

func NewTenantHandler(tenantRepo repository.TenantRepository) *TenantHandler {
	return &TenantHandler{tenantRepo: tenantRepo}
}

// Create handles POST /api/tenants
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httputil.WriteBadRequest(w, "Missing name")
		return
	}

	tenant, err := h.tenantRepo.Create(r.Context(), req.Name, req.APIKey, req.AllowedDomains)
	if err != nil {
		log.Printf("[ERROR] Create tenant handler: name=%q err=%v", req.Name, err)
		httputil.WriteInternalError(w, "Failed to create tenant")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, tenant)
}
