package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type FasesHandler struct{ svc service.FasesService }

func NewFasesHandler(svc service.FasesService) *FasesHandler { return &FasesHandler{svc: svc} }

// Progreso returns the ordered 7-phase board of one masa.
func (h *FasesHandler) Progreso(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerProgreso(c.Request.Context(), masaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar applies one accion (iniciar / actualizar / completar) to a phase.
func (h *FasesHandler) Actualizar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	var req dto.ActualizarProgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarAccion(c.Request.Context(), masaID, c.Param("fase"), usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Completar is the explicit completion shortcut for a phase.
func (h *FasesHandler) Completar(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.Completar(c.Request.Context(), masaID, c.Param("fase"), usuarioActual(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
