package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type HorneadoHandler struct{ svc service.HorneadoService }

func NewHorneadoHandler(svc service.HorneadoService) *HorneadoHandler {
	return &HorneadoHandler{svc: svc}
}

// Info returns the oven-station board: ovens, suggested programs, latest run.
func (h *HorneadoHandler) Info(c *gin.Context) {
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

func (h *HorneadoHandler) Iniciar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.IniciarHorneadoRequest
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

// ActualizarTemperaturas records oven temperature readings mid-bake.
func (h *HorneadoHandler) ActualizarTemperaturas(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.ActualizarTemperaturasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarTemperaturas(c.Request.Context(), masaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarDamper toggles damper usage mid-bake, revalidating the oven.
func (h *HorneadoHandler) ActualizarDamper(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.ActualizarDamperRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarDamper(c.Request.Context(), masaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Completar ends the bake, records quality grades and closes the masa.
func (h *HorneadoHandler) Completar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.CompletarHorneadoRequest
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

// Hornos lists the active oven catalog.
func (h *HorneadoHandler) Hornos(c *gin.Context) {
	resp, err := h.svc.ListarHornos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Programas lists baking programs, optionally filtered by tipo_masa.
func (h *HorneadoHandler) Programas(c *gin.Context) {
	resp, err := h.svc.ListarProgramas(c.Request.Context(), c.Query("tipo_masa"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
