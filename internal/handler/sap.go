package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type SAPHandler struct{ svc service.SAPSyncService }

func NewSAPHandler(svc service.SAPSyncService) *SAPHandler { return &SAPHandler{svc: svc} }

// Sincronizar pulls the day's production orders from SAP and creates the
// corresponding masas. Idempotent: already-synchronized groups are skipped.
func (h *SAPHandler) Sincronizar(c *gin.Context) {
	var req dto.SincronizarOrdenesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Sincronizar(c.Request.Context(), usuarioActual(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
