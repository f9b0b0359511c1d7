package handler

import (
	"errors"
	"net/http"

	"starpro_store/internal/middleware"
	"starpro_store/internal/model"
	"starpro_store/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhoneRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"session": res.Session,
		"token":   res.Token,
		"next":    res.Next,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"` // username or phone
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"session": res.Session,
		"token":   res.Token,
		"next":    res.Next,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	res, err := h.service.Logout(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"next": res.Next})
}

// Session reports the session the caller holds a token for.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "session": sess})
}

// RegisterAuthRoutes registers auth routes. Logout needs the caller to hold
// the current session; the session lookup only reports it.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, optionalAuth gin.HandlerFunc, authMiddlewares ...gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", append(authMiddlewares, h.Logout)...)
		authGroup.GET("/session", optionalAuth, h.Session)
	}
}
