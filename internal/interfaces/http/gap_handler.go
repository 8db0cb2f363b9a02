package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hongquyngo/vti-gap-analysis/internal/application/dto"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain"
	"github.com/hongquyngo/vti-gap-analysis/pkg/logger"
)

// PeriodGapService lo que el handler necesita del caso de uso.
type PeriodGapService interface {
	Calculate(ctx context.Context, req dto.PeriodGapRequest) (*dto.PeriodGapResponseDTO, error)
	Summary(ctx context.Context, req dto.PeriodGapRequest) (*dto.PeriodGapSummaryResponseDTO, error)
}

// PeriodGapHandler expone el cálculo de Period GAP.
type PeriodGapHandler struct {
	uc  PeriodGapService
	log *logger.Logger
}

// NewPeriodGapHandler construye el handler.
func NewPeriodGapHandler(uc PeriodGapService, log *logger.Logger) *PeriodGapHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PeriodGapHandler{uc: uc, log: log.Named("http")}
}

// Calculate godoc
// @Summary      Period GAP por producto y período
// @Description  Agrega demanda y oferta por período, arrastra inventario (y backlog) período a período
// @Description  y devuelve filas, categorización, resumen y listas de acción.
// @Tags         period-gap
// @Security     Bearer
// @Produce      json
// @Param        period_type                 query  string  false  "Daily | Weekly | Monthly"
// @Param        track_backlog               query  bool    false  "Arrastrar demanda no atendida"
// @Param        demand_sources              query  string  false  "OC,Forecast"
// @Param        supply_sources              query  string  false  "Inventory,Pending CAN,Pending PO,Pending WH Transfer"
// @Param        product_codes               query  string  false  "PT codes separados por coma, espacio o salto de línea"
// @Param        brands                      query  string  false  "Marcas separadas por coma"
// @Param        exclude_expired             query  bool    false  "Excluir inventario vencido"
// @Param        include_converted_forecast  query  bool    false  "Incluir forecast ya convertido a OC"
// @Param        oc_date_field               query  string  false  "eta | etd"
// @Param        reference_date              query  string  false  "YYYY-MM-DD para is_past (default hoy)"
// @Success      200  {object}  dto.PeriodGapResponseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/period-gap [get]
func (h *PeriodGapHandler) Calculate(c *fiber.Ctx) error {
	req, err := queryRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	return h.calculate(c, req)
}

// CalculateBody godoc
// @Summary      Period GAP con parámetros en el cuerpo
// @Tags         period-gap
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeriodGapRequest  true  "Parámetros del cálculo"
// @Success      200  {object}  dto.PeriodGapResponseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/period-gap [post]
func (h *PeriodGapHandler) CalculateBody(c *fiber.Ctx) error {
	var req dto.PeriodGapRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
		}
	}
	return h.calculate(c, req)
}

// Summary godoc
// @Summary      Resumen de Period GAP
// @Description  Igual que GET /api/period-gap pero solo con categorización y resumen.
// @Tags         period-gap
// @Security     Bearer
// @Produce      json
// @Param        period_type     query  string  false  "Daily | Weekly | Monthly"
// @Param        track_backlog   query  bool    false  "Arrastrar demanda no atendida"
// @Param        product_codes   query  string  false  "PT codes"
// @Success      200  {object}  dto.PeriodGapSummaryResponseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/period-gap/summary [get]
func (h *PeriodGapHandler) Summary(c *fiber.Ctx) error {
	req, err := queryRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.Summary(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *PeriodGapHandler) calculate(c *fiber.Ctx, req dto.PeriodGapRequest) error {
	out, err := h.uc.Calculate(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// fail traduce errores del caso de uso: validación → 400, resto → 500 sin detalle interno.
func (h *PeriodGapHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	h.log.Error().Err(err).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("period gap")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno al calcular el GAP"})
}

// queryRequest parsea la query; las listas aceptan claves repetidas o valores separados por coma.
func queryRequest(c *fiber.Ctx) (dto.PeriodGapRequest, error) {
	var req dto.PeriodGapRequest
	if err := c.QueryParser(&req); err != nil {
		return req, err
	}
	req.DemandSources = splitList(req.DemandSources)
	req.SupplySources = splitList(req.SupplySources)
	req.Brands = splitList(req.Brands)
	return req, nil
}

func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
