package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CroSSer23/spa-procurement/internal/service"
)

// TrybeHandler exposes the read-only inventory passthrough. The id parameter
// is an upstream identifier, not one of ours, so it is passed through as-is.
type TrybeHandler struct{ svc service.TrybeService }

func NewTrybeHandler(svc service.TrybeService) *TrybeHandler {
	return &TrybeHandler{svc: svc}
}

func (h *TrybeHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("q")
	resp, err := h.svc.ListProducts(c.Request.Context(), page, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrybeHandler) GetProduct(c *gin.Context) {
	resp, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
