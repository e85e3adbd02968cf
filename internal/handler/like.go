package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"likebar/internal/httputil"
	"likebar/internal/model"
	"likebar/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Submit handles POST /api/like
// Duplicate likes from the same visitor return the current count with no
// error; they are successful no-ops.
func (h *LikeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid JSON")
		return
	}

	likes, err := h.likeService.Submit(r.Context(), req.PageKey, httputil.ClientAddr(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPageKeyRequired):
			httputil.WriteBadRequest(w, "Missing page_key")
		case errors.Is(err, model.ErrRateLimited):
			httputil.WriteTooManyRequests(w, "Too many requests")
		case errors.Is(err, model.ErrPageNotInitialized):
			httputil.WritePageNotInitialized(w, "Page not initialized")
		default:
			log.Printf("[ERROR] Submit like handler: key=%q err=%v", req.PageKey, err)
			httputil.WriteInternalError(w, "Failed to record like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LikeResponse{Likes: likes})
}
