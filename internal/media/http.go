package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("/media/uploads", h.createUpload)
	rg.GET("/media/download", h.download)
}

type uploadReq struct {
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func (h *Handler) createUpload(c *gin.Context) {
	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	ticket, err := h.svc.CreateUpload(c.Request.Context(), userID, req.Kind, req.ContentType, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedKind),
			errors.Is(err, ErrUnsupportedContentType),
			errors.Is(err, ErrTooLarge):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "upload": ticket})
}

func (h *Handler) download(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "key required"})
		return
	}

	url, err := h.svc.DownloadURL(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, ErrInvalidKey) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}
