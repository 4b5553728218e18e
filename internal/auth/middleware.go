package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

const contextKeyUserID = "user_id"

// UserValidator re-checks that the user behind a session still exists.
// Satisfied by service.UserService.
type UserValidator interface {
	EnsureUserValid(ctx context.Context, userID string) error
}

// ValidatorFunc adapts a function to the UserValidator interface.
type ValidatorFunc func(ctx context.Context, userID string) error

func (f ValidatorFunc) EnsureUserValid(ctx context.Context, userID string) error {
	return f(ctx, userID)
}

// UserIDFromContext returns the current user ID set by RequireSession.
// Empty if not set.
func UserIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// RequireSession returns a middleware that checks for a valid session
// cookie and sets the current user ID in context. When a validator is
// given, the session's user is re-checked against the database and the
// session is force-deleted on mismatch (stale or forged sessions).
// Missing or invalid sessions get a 401.
func RequireSession(sessions *Store, validator UserValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		if validator != nil {
			if err := validator.EnsureUserValid(c.Request.Context(), userID); err != nil {
				_ = sessions.Delete(c.Request.Context(), sessionID)
				c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
				return
			}
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
