package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
)

// WithUser ensures every authenticated request has a local users row.
// Must run after FirebaseAuthMiddleware, which sets the token claims.
func WithUser(userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetString(CtxFirebaseUID))
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthenticated"})
			c.Abort()
			return
		}

		uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetString("email"),
			DisplayName: c.GetString("display_name"),
			PhotoURL:    c.GetString("photo_url"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}

// UserDBID returns the local user id set by WithUser.
func UserDBID(c *gin.Context) string {
	v := c.GetString(CtxUserDBID)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// UserFirebaseUID extracts the Firebase UID from the Gin context
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
