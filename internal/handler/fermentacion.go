package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type FermentacionHandler struct{ svc service.FermentacionService }

func NewFermentacionHandler(svc service.FermentacionService) *FermentacionHandler {
	return &FermentacionHandler{svc: svc}
}

// Info returns the fermentation board: dough-type config plus the latest run.
func (h *FermentacionHandler) Info(c *gin.Context) {
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

func (h *FermentacionHandler) EntradaCamara(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.EntradaCamaraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntradaCamara(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FermentacionHandler) SalidaCamara(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.SalidaCamaraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSalidaCamara(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FermentacionHandler) EntradaFrio(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.EntradaFrioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntradaFrio(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FermentacionHandler) SalidaFrio(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.SalidaFrioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSalidaFrio(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
