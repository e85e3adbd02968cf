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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Submit handles POST /api/comment
func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid JSON")
		return
	}

	name, err := h.commentService.Submit(r.Context(), req.PageKey, req.Name, req.Comment, httputil.ClientAddr(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPageKeyRequired):
			httputil.WriteBadRequest(w, "Missing page_key")
		case errors.Is(err, model.ErrCommentRequired):
			httputil.WriteBadRequest(w, "Missing comment text")
		case errors.Is(err, model.ErrCommentTooLong):
			httputil.WriteBadRequest(w, "Comment too long (max 500 characters)")
		case errors.Is(err, model.ErrRateLimited):
			httputil.WriteTooManyRequests(w, "Too many comments")
		case errors.Is(err, model.ErrPageNotInitialized):
			httputil.WritePageNotInitialized(w, "Page not initialized")
		default:
			log.Printf("[ERROR] Submit comment handler: key=%q err=%v", req.PageKey, err)
			httputil.WriteInternalError(w, "Failed to store comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.CommentResponse{Status: "ok", Name: name})
}
