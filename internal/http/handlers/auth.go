package handlers

import (
	"net/http"

	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
