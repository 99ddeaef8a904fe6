package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/apierror"
	"github.com/carlos-rodrigo/margen-agro/internal/dto"
	"github.com/carlos-rodrigo/margen-agro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PreciosHandler serves the price board and the exchange rate.
// No authentication required — read-only public data.
type PreciosHandler struct {
	pizarra    service.PizarraService
	tipoCambio service.TipoCambioService
}

func NewPreciosHandler(pizarra service.PizarraService, tipoCambio service.TipoCambioService) *PreciosHandler {
	return &PreciosHandler{pizarra: pizarra, tipoCambio: tipoCambio}
}

// Listar godoc
// @Summary Precios de pizarra (USD/tn) con fallback referencial
// @Tags precios
// @Produce json
// @Success 200 {object} model.PreciosPizarra
// @Router /v1/precios [get]
func (h *PreciosHandler) Listar(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, h.pizarra.Precios(c.Request.Context()))
}

// PorCultivo godoc
// @Summary Precio de pizarra de un cultivo
// @Tags precios
// @Produce json
// @Param cultivo path string true "Cultivo (soja, maiz, trigo, girasol, cebada, sorgo)"
// @Success 200 {object} model.PrecioPizarra
// @Failure 404 {object} apierror.APIError
// @Router /v1/precios/{cultivo} [get]
func (h *PreciosHandler) PorCultivo(c *gin.Context) {
	p, err := h.pizarra.PrecioCultivo(c.Request.Context(), c.Param("cultivo"))
	if errors.Is(err, service.ErrCultivoSinPrecio) {
		c.JSON(http.StatusNotFound, apierror.New("Cultivo sin precio de pizarra"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el precio"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// Refrescar POST /v1/precios/refrescar
func (h *PreciosHandler) Refrescar(c *gin.Context) {
	p, err := h.pizarra.Refrescar(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("refresco manual de pizarra fallido")
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo actualizar la pizarra"))
		return
	}
	c.JSON(http.StatusOK, dto.RefrescoResponse{
		Precios:             len(p.Precios),
		UltimaActualizacion: p.UltimaActualizacion.Format(time.RFC3339),
	})
}

// TipoCambio godoc
// @Summary Tipo de cambio oficial ARS/USD
// @Tags precios
// @Produce json
// @Success 200 {object} model.TipoCambio
// @Router /v1/tipo-cambio [get]
func (h *PreciosHandler) TipoCambio(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, h.tipoCambio.Obtener(c.Request.Context()))
}
