package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type PesajeHandler struct{ svc service.PesajeService }

func NewPesajeHandler(svc service.PesajeService) *PesajeHandler { return &PesajeHandler{svc: svc} }

// Checklist returns the weigh-in board of one masa.
func (h *PesajeHandler) Checklist(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerChecklist(c.Request.Context(), masaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarIngrediente flips checklist flags / records the real weight of
// one ingredient. Flags advance strictly disponible → verificado → pesado.
func (h *PesajeHandler) ActualizarIngrediente(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	ingredienteID, ok := parseUUIDParam(c, "ingredienteId")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarIngrediente(c.Request.Context(), masaID, ingredienteID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirmar closes PESAJE when every ingredient cleared its three flags, and
// unlocks AMASADO. Incomplete checklists come back as 409 with the faltantes.
func (h *PesajeHandler) Confirmar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.ConfirmarPesaje(c.Request.Context(), masaID, usuarioActual(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EnviarCorreo queues the packaging-area notification for a weighed masa.
func (h *PesajeHandler) EnviarCorreo(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.EnviarCorreoEmpaqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarCorreoEmpaque(c.Request.Context(), masaID, usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
