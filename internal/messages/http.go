package messages

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

// RegisterMatchSubroutes mounts the conversation endpoints under
// /matches/:id.
func RegisterMatchSubroutes(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("/:id/messages", h.send)
	rg.GET("/:id/messages", h.list)
}

type sendReq struct {
	Body string `json:"body"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	m, err := h.repo.Send(c.Request.Context(), c.Param("id"), userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyBody), errors.Is(err, ErrBodyTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "match not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": m})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid before cursor"})
			return
		}
		before = t
	}

	userID := auth.UserDBID(c)
	items, err := h.repo.List(c.Request.Context(), c.Param("id"), userID, limit, before)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": items})
}
