package middleware

import (
	"net/http"

	"starpro_store/internal/model"
	"starpro_store/internal/repository"
	"starpro_store/internal/utils"

	"github.com/gin-gonic/gin"
)

const SessionKey = "session"

// SessionMiddleware loads the current session record. The token subject set
// by JWTAuthMiddleware must match it: a token issued before a logout or for
// another user is rejected.
func SessionMiddleware(sessions *repository.SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Current(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
			return
		}
		if c.GetString(AuthUserKey) != sess.Username {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token does not match the active session"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// OptionalSession stores the current session only when the request carries a
// valid bearer token for it. Every other caller is treated as logged out.
func OptionalSession(jwtUtil *utils.JWTUtil, sessions *repository.SessionHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil || claims.Username == "" {
			c.Next()
			return
		}

		sess, err := sessions.Current(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		if sess != nil && sess.Username == claims.Username {
			c.Set(AuthUserKey, claims.Username)
			c.Set(SessionKey, sess)
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware or OptionalSession.
func CurrentSession(c *gin.Context) (*model.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*model.Session)
	return sess, ok && sess != nil
}
