package payments

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

	rg.POST("/payments", h.create)
	rg.GET("/payments/:id", h.get)
	rg.PUT("/payments/:id/status", h.setStatus)
	rg.GET("/matches/:id/payments", h.listByMatch)
}

type createReq struct {
	MatchID     string `json:"match_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.MatchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Create(c.Request.Context(), userID, CreatePayment{
		MatchID:     req.MatchID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Reference:   req.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "match not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "payment": p})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": p})
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
	p, err := h.repo.SetStatus(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "payment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": p})
}

func (h *Handler) listByMatch(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListByMatch(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payments": items})
}
