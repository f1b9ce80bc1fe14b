package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type FormadoHandler struct{ svc service.FormadoService }

func NewFormadoHandler(svc service.FormadoService) *FormadoHandler {
	return &FormadoHandler{svc: svc}
}

// Info returns the forming-station board: specs, machines and the latest run.
func (h *FormadoHandler) Info(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerInfo(c.Request.Context(), masaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormadoHandler) Iniciar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.IniciarFormadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Iniciar(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FormadoHandler) Completar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.CompletarFormadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Completar(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
