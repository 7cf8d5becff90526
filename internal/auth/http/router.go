package http

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/auth"
	"github.com/MuseLink-app/muselink-backend/internal/profiles"
	"github.com/MuseLink-app/muselink-backend/internal/users"
)

type Handler struct {
	authClient *fbauth.Client
	users      *users.Repo
	profiles   *profiles.Repo
}

func NewHandler(authClient *fbauth.Client, userRepo *users.Repo, profileRepo *profiles.Repo) *Handler {
	return &Handler{
		authClient: authClient,
		users:      userRepo,
		profiles:   profileRepo,
	}
}

// RegisterPublic mounts endpoints that do not require a token.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
}

// RegisterAuthed mounts endpoints behind token verification + WithUser.
func (h *Handler) RegisterAuthed(rg *gin.RouterGroup) {
	rg.POST("/auth/sync", h.sync)
	rg.GET("/me", h.me)
}

type signupReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	params := (&fbauth.UserToCreate{}).
		Email(strings.TrimSpace(req.Email)).
		Password(req.Password)
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		params = params.DisplayName(name)
	}

	record, err := h.authClient.CreateUser(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "create identity: " + err.Error()})
		return
	}

	uid, err := h.users.EnsureUser(c.Request.Context(), users.UpsertUser{
		FirebaseUID: record.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.profiles.Ensure(c.Request.Context(), uid, req.DisplayName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": u})
}

// sync records a sign-in: WithUser already upserted the row from token
// claims, so this only stamps last_login_at and returns the record.
func (h *Handler) sync(c *gin.Context) {
	userID := auth.UserDBID(c)

	if err := h.users.RecordLogin(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
