package handler

import (
	"net/http"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/apierror"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"

	"github.com/gin-gonic/gin"
)

type MasasHandler struct{ svc service.MasaService }

func NewMasasHandler(svc service.MasaService) *MasasHandler { return &MasasHandler{svc: svc} }

// Listar returns the paginated production board, filtered by date and estado.
func (h *MasasHandler) Listar(c *gin.Context) {
	var filter dto.MasaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar masas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle returns one masa with productos, ingredientes and the phase board.
func (h *MasasHandler) Detalle(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerDetalle(c.Request.Context(), masaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarProducto reprograms the scheduled units of one product.
func (h *MasasHandler) ActualizarProducto(c *gin.Context) {
	masaID, ok := parseUUIDParam(c, "masaId")
	if !ok {
		return
	}
	productoID, ok := parseUUIDParam(c, "productoId")
	if !ok {
		return
	}
	var req dto.ActualizarProductoMasaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarProducto(c.Request.Context(), masaID, productoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
