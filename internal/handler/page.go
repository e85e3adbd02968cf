package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"likebar/internal/httputil"
	"likebar/internal/model"
	"likebar/internal/service"
)

type PageHandler struct {
	pageService *service.PageService
}

func NewPageHandler(pageService *service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// Init handles POST /api/page/init
// Idempotent page registration; the optional X-Api-Key header attaches tenant
// metadata when it resolves.
func (h *PageHandler) Init(w http.ResponseWriter, r *http.Request) {
	var req model.InitPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid JSON")
		return
	}

	page, err := h.pageService.Init(r.Context(), req.PageKey, r.Header.Get("X-Api-Key"))
	if err != nil {
		if errors.Is(err, model.ErrPageKeyRequired) {
			httputil.WriteBadRequest(w, "Missing page_key")
			return
		}
		log.Printf("[ERROR] Init page handler: key=%q err=%v", req.PageKey, err)
		httputil.WriteInternalError(w, "Failed to initialize page")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.InitPageResponse{
		PageID: page.ID,
		Likes:  page.LikesCount,
	})
}

// Get handles GET /api/page/{pageKey}
// Unknown pages return zero likes and no comments rather than an error.
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	pageKey := chi.URLParam(r, "*")
	if pageKey == "" {
		httputil.WriteBadRequest(w, "Missing page_key")
		return
	}

	resp, err := h.pageService.Get(r.Context(), pageKey)
	if err != nil {
		log.Printf("[ERROR] Get page handler: key=%q err=%v", pageKey, err)
		httputil.WriteInternalError(w, "Failed to load page")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
