package projects

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/auth"
	"github.com/MuseLink-app/muselink-backend/internal/cache"
)

type Handler struct {
	repo  *Repo
	cache *cache.Store
}

func Register(rg *gin.RouterGroup, repo *Repo, store *cache.Store) {
	h := &Handler{repo: repo, cache: store}

	rg.POST("", h.create)
	rg.GET("", h.browse)
	rg.GET("/mine", h.listMine)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.PUT("/:public_id/status", h.setStatus)
	rg.DELETE("/:public_id", h.delete)
}

type createReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	LookingFor  []string `json:"looking_for"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Create(c.Request.Context(), userID, CreateProject{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Genres:      req.Genres,
		LookingFor:  req.LookingFor,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidateBrowse(c)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) browse(c *gin.Context) {
	genre := strings.TrimSpace(c.Query("genre"))
	lookingFor := strings.TrimSpace(c.Query("looking_for"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	key := cache.BrowseKey(genre, lookingFor, strconv.Itoa(limit), strconv.Itoa(offset))

	var cached []Project
	if h.cache != nil {
		if hit, err := h.cache.Get(c.Request.Context(), cache.GroupProjects, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"ok": true, "projects": cached, "cached": true})
			return
		}
	}

	items, err := h.repo.Browse(c.Request.Context(), BrowseFilter{
		Genre:      genre,
		LookingFor: lookingFor,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(c.Request.Context(), cache.GroupProjects, key, items)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) listMine(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	publicID := c.Param("public_id")

	var req UpdateProject
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "title cannot be empty"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Update(c.Request.Context(), userID, publicID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	h.invalidateBrowse(c)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) setStatus(c *gin.Context) {
	publicID := c.Param("public_id")

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.SetStatus(c.Request.Context(), userID, publicID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	h.invalidateBrowse(c)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := c.Param("public_id")
	userID := auth.UserDBID(c)

	ok, err := h.repo.SoftDelete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	h.invalidateBrowse(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) invalidateBrowse(c *gin.Context) {
	if h.cache != nil {
		_ = h.cache.InvalidateGroup(c.Request.Context(), cache.GroupProjects)
	}
}
