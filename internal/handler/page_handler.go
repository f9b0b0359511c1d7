package handler

import (
	"net/http"

	"starpro_store/internal/middleware"
	"starpro_store/internal/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	service service.PageService
}

func NewPageHandler(s service.PageService) *PageHandler {
	return &PageHandler{service: s}
}

// Show answers a page load with either {"redirect": route} or the page view.
// OptionalSession must run first.
func (h *PageHandler) Show(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	dec, page, err := h.service.Render(c.Request.Context(), c.Param("route"), sess)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}
	if dec.Redirects() {
		c.JSON(http.StatusOK, gin.H{"redirect": dec.Redirect})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) RegisterPageRoutes(rg *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	rg.GET("/pages/:route", optionalAuth, h.Show)
}
