package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/carlos-rodrigo/margen-agro/internal/apierror"
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their JSON name so the client can map errors to inputs.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Variants are flat on the wire, so their errors are reported under the
	// wire keys of the enclosing section.
	validate.RegisterStructValidation(validarPrecio, model.PriceData{})
	validate.RegisterStructValidation(validarArrendamiento, model.ArrendamientoData{})
}

func validarPrecio(sl validator.StructLevel) {
	p := sl.Current().Interface().(model.PriceData)
	if p.GastoComercial != nil && p.GastoComercial.Tasa().IsNegative() {
		sl.ReportError(p.GastoComercial.Tasa(), "gastosComerciales", "GastoComercial", "min", "0")
	}
}

func validarArrendamiento(sl validator.StructLevel) {
	a := sl.Current().Interface().(model.ArrendamientoData)
	switch m := a.Modalidad.(type) {
	case model.ArrendamientoQQSoja:
		if m.QQSojaHa.IsNegative() {
			sl.ReportError(m.QQSojaHa, "qqSojaHa", "QQSojaHa", "min", "0")
		}
		if m.PrecioSojaQQ.IsNegative() {
			sl.ReportError(m.PrecioSojaQQ, "precioSojaQq", "PrecioSojaQQ", "min", "0")
		}
	case model.ArrendamientoFijo:
		if m.MontoFijoUSD.IsNegative() {
			sl.ReportError(m.MontoFijoUSD, "montoFijoUsd", "MontoFijoUSD", "min", "0")
		}
	}
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			// Namespace is "Type.path.to[0].field"; the client knows the path only.
			ns := fe.Namespace()
			if i := strings.IndexByte(ns, '.'); i >= 0 {
				ns = ns[i+1:]
			}
			fields[ns] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}
