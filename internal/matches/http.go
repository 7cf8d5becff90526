package matches

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.listMine)
	rg.GET("/:id", h.get)
	rg.PUT("/:id/status", h.setStatus)
}

func (h *Handler) listMine(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "matches": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	m, err := h.repo.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "match": m})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) setStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	m, err := h.repo.SetStatus(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "match not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "match": m})
}
