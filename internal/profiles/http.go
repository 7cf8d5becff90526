package profiles

import (
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

// Register mounts the profile routes. The browse and read endpoints live on
// the authed group like everything else; the mobile app never browses
// anonymously.
func Register(rg *gin.RouterGroup, repo *Repo, store *cache.Store) {
	h := &Handler{repo: repo, cache: store}

	rg.GET("/profiles", h.browse)
	rg.GET("/profiles/:user_id", h.get)
	rg.GET("/me/profile", h.getMine)
	rg.PUT("/me/profile", h.updateMine)
}

func (h *Handler) browse(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))
	genre := strings.TrimSpace(c.Query("genre"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	key := cache.BrowseKey(role, genre, strconv.Itoa(limit), strconv.Itoa(offset))

	var cached []Profile
	if h.cache != nil {
		if hit, err := h.cache.Get(c.Request.Context(), cache.GroupProfiles, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"ok": true, "profiles": cached, "cached": true})
			return
		}
	}

	items, err := h.repo.Browse(c.Request.Context(), BrowseFilter{
		Role:   role,
		Genre:  genre,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if err == ErrInvalidRole {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(c.Request.Context(), cache.GroupProfiles, key, items)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profiles": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) getMine(c *gin.Context) {
	userID := auth.UserDBID(c)

	p, err := h.repo.Get(c.Request.Context(), userID)
	if err == ErrProfileNotFound {
		// Users created before profile seeding get one on first read.
		if err := h.repo.Ensure(c.Request.Context(), userID, ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		p, err = h.repo.Get(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) updateMine(c *gin.Context) {
	var req UpdateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)

	p, err := h.repo.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		return
	}

	// Only provided fields overwrite.
	if req.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Genres != nil {
		p.Genres = req.Genres
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}
	if req.Links != nil {
		if p.Links == nil {
			p.Links = make(map[string]string)
		}
		for k, v := range req.Links {
			p.Links[k] = v
		}
	}

	if err := h.repo.Save(c.Request.Context(), p); err != nil {
		if err == ErrInvalidRole {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateGroup(c.Request.Context(), cache.GroupProfiles)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}
