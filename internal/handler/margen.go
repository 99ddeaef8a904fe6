package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carlos-rodrigo/margen-agro/internal/apierror"
	"github.com/carlos-rodrigo/margen-agro/internal/calculator"
	"github.com/carlos-rodrigo/margen-agro/internal/dto"
	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/service"
	"github.com/carlos-rodrigo/margen-agro/internal/share"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MargenHandler struct {
	svc       service.MargenService
	publicURL string
}

func NewMargenHandler(svc service.MargenService, publicURL string) *MargenHandler {
	return &MargenHandler{svc: svc, publicURL: publicURL}
}

// Default godoc
// @Summary Escenario base para un formulario vacío
// @Tags margen
// @Produce json
// @Success 200 {object} model.CalculatorInputs
// @Router /v1/inputs/default [get]
func (h *MargenHandler) Default(c *gin.Context) {
	c.JSON(http.StatusOK, calculator.DefaultInputs())
}

// Calcular godoc
// @Summary Calcula el margen bruto de un escenario
// @Tags margen
// @Accept json
// @Produce json
// @Param body body model.CalculatorInputs true "Escenario"
// @Success 200 {object} dto.CalculoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/margen/calcular [post]
func (h *MargenHandler) Calcular(c *gin.Context) {
	in := calculator.DefaultInputs()
	if !bindAndValidate(c, &in) {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("calculo de margen fallido")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el margen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compartir POST /v1/margen/compartir
func (h *MargenHandler) Compartir(c *gin.Context) {
	in := calculator.DefaultInputs()
	if !bindAndValidate(c, &in) {
		return
	}
	resp, err := h.svc.Compartir(c.Request.Context(), in, h.publicURL)
	if err != nil {
		log.Error().Err(err).Msg("generacion de link fallida")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el link"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estado GET /v1/margen/estado?state=
func (h *MargenHandler) Estado(c *gin.Context) {
	token := c.Query(share.StateParam)
	if token == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el parametro state"))
		return
	}
	resp, err := h.svc.DesdeEstado(c.Request.Context(), token)
	if errors.Is(err, share.ErrEstadoInvalido) {
		c.JSON(http.StatusBadRequest, apierror.New("Link compartido invalido"))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("calculo desde estado fallido")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el margen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Informe POST /v1/margen/informe
func (h *MargenHandler) Informe(c *gin.Context) {
	req := dto.InformeRequest{Inputs: calculator.DefaultInputs()}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Informe(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("informe fallido")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el informe"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InformePDF POST /v1/margen/informe/pdf
func (h *MargenHandler) InformePDF(c *gin.Context) {
	req := dto.InformeRequest{Inputs: calculator.DefaultInputs()}
	if !bindAndValidate(c, &req) {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.InformePDF(c.Request.Context(), req, &buf); err != nil {
		log.Error().Err(err).Msg("informe pdf fallido")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nombrePDF(req.Inputs)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// nombrePDF keeps only [a-z0-9-] from the crop id so it is safe inside the header.
func nombrePDF(in model.CalculatorInputs) string {
	cultivo := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, strings.ToLower(in.Produccion.Cultivo))
	if cultivo == "" {
		return "rindemax.pdf"
	}
	return "rindemax-" + cultivo + ".pdf"
}
