package applications

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

	rg.POST("/projects/:public_id/applications", h.submit)
	rg.GET("/projects/:public_id/applications", h.listByProject)
	rg.GET("/applications/mine", h.listMine)
	rg.GET("/applications/:id", h.get)
	rg.POST("/applications/:id/withdraw", h.withdraw)
	rg.POST("/applications/:id/accept", h.accept)
	rg.POST("/applications/:id/reject", h.reject)
}

type submitReq struct {
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	app, err := h.repo.Submit(c.Request.Context(), c.Param("public_id"), userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrOwnProject), errors.Is(err, ErrProjectNotOpen):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": app})
}

func (h *Handler) listByProject(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListByProject(c.Request.Context(), c.Param("public_id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func (h *Handler) listMine(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	app, err := h.repo.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application": app})
}

func (h *Handler) withdraw(c *gin.Context) {
	userID := auth.UserDBID(c)
	app, err := h.repo.Withdraw(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.decideError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application": app})
}

func (h *Handler) accept(c *gin.Context) {
	h.decide(c, true)
}

func (h *Handler) reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *Handler) decide(c *gin.Context, accept bool) {
	userID := auth.UserDBID(c)
	res, err := h.repo.Decide(c.Request.Context(), c.Param("id"), userID, accept)
	if err != nil {
		h.decideError(c, err)
		return
	}

	resp := gin.H{"ok": true, "application": res.Application}
	if res.MatchID != "" {
		resp["match_id"] = res.MatchID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) decideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "application not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
