package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/calculator"
	"github.com/carlos-rodrigo/margen-agro/internal/dto"
	"github.com/carlos-rodrigo/margen-agro/internal/informe"
	"github.com/carlos-rodrigo/margen-agro/internal/infra"
	"github.com/carlos-rodrigo/margen-agro/internal/metrics"
	"github.com/carlos-rodrigo/margen-agro/internal/model"
	"github.com/carlos-rodrigo/margen-agro/internal/repository"
	"github.com/carlos-rodrigo/margen-agro/internal/share"

	"github.com/rs/zerolog/log"
)

// MargenService wraps the margin engine with board-price prefill, result
// memoization, sharing and reports. The engine itself stays I/O free.
type MargenService interface {
	Calcular(ctx context.Context, in model.CalculatorInputs) (dto.CalculoResponse, error)
	Compartir(ctx context.Context, in model.CalculatorInputs, baseURL string) (dto.CompartirResponse, error)
	DesdeEstado(ctx context.Context, token string) (dto.CalculoResponse, error)
	Informe(ctx context.Context, req dto.InformeRequest) (dto.InformeResponse, error)
	InformePDF(ctx context.Context, req dto.InformeRequest, w io.Writer) error
}

type margenService struct {
	pizarra    PizarraService
	tipoCambio TipoCambioService
	resultados repository.ResultadoRepository
	now        func() time.Time
}

func NewMargenService(pizarra PizarraService, tipoCambio TipoCambioService, resultados repository.ResultadoRepository) MargenService {
	return &margenService{
		pizarra:    pizarra,
		tipoCambio: tipoCambio,
		resultados: resultados,
		now:        time.Now,
	}
}

func (s *margenService) Calcular(ctx context.Context, in model.CalculatorInputs) (dto.CalculoResponse, error) {
	in = s.completarPrecio(ctx, in)

	key, err := repository.ClaveResultado(in)
	if err != nil {
		return dto.CalculoResponse{}, err
	}

	res, ok, err := s.resultados.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("margen: cache de resultados no disponible")
	}
	if !ok {
		res = calculator.CalculateMargin(in)
		metrics.Calculos.Inc()
		if err := s.resultados.Save(ctx, key, res); err != nil {
			log.Warn().Err(err).Msg("margen: no se pudo cachear el resultado")
		}
	}

	return dto.CalculoResponse{Inputs: in.ConIDs(), Resultados: res}, nil
}

// completarPrecio fills an empty price from the board when the user asked for
// the board price. A crop without a quote keeps the zero price.
func (s *margenService) completarPrecio(ctx context.Context, in model.CalculatorInputs) model.CalculatorInputs {
	if !in.Precio.IsPrecioPizarra || !in.Precio.PrecioBruto.IsZero() || in.Produccion.Cultivo == "" {
		return in
	}
	p, err := s.pizarra.PrecioCultivo(ctx, in.Produccion.Cultivo)
	if err != nil {
		if !errors.Is(err, ErrCultivoSinPrecio) {
			log.Warn().Err(err).Str("cultivo", in.Produccion.Cultivo).Msg("margen: precio de pizarra no disponible")
		}
		return in
	}
	in.Precio.PrecioBruto = p.Precio
	return in
}

// Compartir shares the scenario as calculated, so a board price filled in by
// Calcular is also part of the link and the text.
func (s *margenService) Compartir(ctx context.Context, in model.CalculatorInputs, baseURL string) (dto.CompartirResponse, error) {
	in = s.completarPrecio(ctx, in)

	token, err := share.Encode(in)
	if err != nil {
		return dto.CompartirResponse{}, err
	}
	u, err := share.ShareURL(baseURL, token)
	if err != nil {
		return dto.CompartirResponse{}, err
	}

	calc, err := s.Calcular(ctx, in)
	if err != nil {
		return dto.CompartirResponse{}, err
	}
	texto := share.ShareText(in.Produccion.Cultivo, calc.Resultados.MargenBrutoHa)
	redes := share.ShareIntents(u, texto)

	return dto.CompartirResponse{
		State: token,
		URL:   u,
		Texto: texto,
		Redes: dto.RedesShare{
			Twitter:  redes.Twitter,
			WhatsApp: redes.WhatsApp,
			LinkedIn: redes.LinkedIn,
		},
	}, nil
}

func (s *margenService) DesdeEstado(ctx context.Context, token string) (dto.CalculoResponse, error) {
	in, err := share.Decode(token)
	if err != nil {
		return dto.CalculoResponse{}, err
	}
	return s.Calcular(ctx, in)
}

func (s *margenService) Informe(ctx context.Context, req dto.InformeRequest) (dto.InformeResponse, error) {
	calc, err := s.Calcular(ctx, req.Inputs)
	if err != nil {
		return dto.InformeResponse{}, err
	}

	var tc *model.TipoCambio
	if req.Moneda == dto.MonedaARS {
		v := s.tipoCambio.Obtener(ctx)
		tc = &v
	}
	return informe.Construir(calc.Inputs, calc.Resultados, tc, s.now()), nil
}

func (s *margenService) InformePDF(ctx context.Context, req dto.InformeRequest, w io.Writer) error {
	inf, err := s.Informe(ctx, req)
	if err != nil {
		return err
	}
	if err := infra.GenerateInformePDF(w, inf); err != nil {
		return fmt.Errorf("informe pdf: %w", err)
	}
	return nil
}
