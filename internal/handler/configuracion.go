package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

func (h *ConfiguracionHandler) FactorAbsorcion(c *gin.Context) {
	valor, err := h.svc.ObtenerFactorAbsorcion(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FactorAbsorcionResponse{Valor: valor})
}

func (h *ConfiguracionHandler) ActualizarFactorAbsorcion(c *gin.Context) {
	var req dto.ActualizarFactorAbsorcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarFactorAbsorcion(c.Request.Context(), usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionHandler) CorreosEmpaque(c *gin.Context) {
	correos, err := h.svc.ObtenerCorreosEmpaque(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CorreosEmpaqueResponse{Correos: correos})
}

func (h *ConfiguracionHandler) ActualizarCorreosEmpaque(c *gin.Context) {
	var req dto.ActualizarCorreosEmpaqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCorreosEmpaque(c.Request.Context(), usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
