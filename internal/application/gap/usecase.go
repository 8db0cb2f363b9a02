// Package gap contiene el caso de uso de Period GAP: resuelve los parámetros de la
// solicitud, carga demanda y oferta, ejecuta el motor y arma la respuesta.
package gap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hongquyngo/vti-gap-analysis/internal/application/dto"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	domaingap "github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/repository"
	"github.com/hongquyngo/vti-gap-analysis/pkg/logger"
)

// Settings valores por defecto y ajustes del motor, tomados de la configuración GAP.
type Settings struct {
	DefaultPeriodType   string
	DefaultTrackBacklog bool
	Parallelism         int
	BalanceTolerance    decimal.Decimal
	Thresholds          *domaingap.Thresholds // nil = umbrales por defecto
	DemandSources       []entity.DemandSource
	SupplySources       []entity.SupplySource
	ExcludeExpired      bool
	OCDateField         string
	TopN                int
}

// PeriodGapUseCase orquesta un cálculo de Period GAP.
type PeriodGapUseCase struct {
	demandRepo repository.DemandRepository
	supplyRepo repository.SupplyRepository
	settings   Settings
	log        *logger.Logger
	now        func() time.Time
}

// NewPeriodGapUseCase construye el caso de uso.
func NewPeriodGapUseCase(
	demandRepo repository.DemandRepository,
	supplyRepo repository.SupplyRepository,
	settings Settings,
	log *logger.Logger,
) *PeriodGapUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PeriodGapUseCase{
		demandRepo: demandRepo,
		supplyRepo: supplyRepo,
		settings:   settings,
		log:        log.Named("period_gap"),
		now:        time.Now,
	}
}

// params solicitud ya resuelta contra los valores por defecto.
type params struct {
	periodType    domaingap.PeriodType
	trackBacklog  bool
	demandFilter  repository.DemandFilter
	supplyFilter  repository.SupplyFilter
	referenceDate time.Time
}

// calculation resultado del motor más los metadatos de la corrida.
type calculation struct {
	id     string
	params params
	result *domaingap.Result
}

// Calculate ejecuta el cálculo completo y devuelve filas, categorización, resumen y acciones.
// Los parámetros inválidos devuelven un error que cumple errors.Is(err, domain.ErrInvalidInput).
func (uc *PeriodGapUseCase) Calculate(ctx context.Context, req dto.PeriodGapRequest) (*dto.PeriodGapResponseDTO, error) {
	calc, err := uc.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return toResponseDTO(calc), nil
}

// Summary igual que Calculate pero sin filas ni acciones.
func (uc *PeriodGapUseCase) Summary(ctx context.Context, req dto.PeriodGapRequest) (*dto.PeriodGapSummaryResponseDTO, error) {
	calc, err := uc.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return toSummaryResponseDTO(calc), nil
}

func (uc *PeriodGapUseCase) run(ctx context.Context, req dto.PeriodGapRequest) (*calculation, error) {
	p, err := uc.resolve(req)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	start := time.Now()
	log := uc.log.Zerolog().With().Str("calculation_id", id).Logger()

	demand, supply, err := uc.load(ctx, p)
	if err != nil {
		log.Error().Err(err).Msg("carga de datos")
		return nil, err
	}
	demand, supply = applyFilters(demand, supply, p.demandFilter.ProductIDs, p.demandFilter.Brands)

	res, err := domaingap.Calculate(domaingap.Input{
		Demand: demand,
		Supply: supply,
		Options: domaingap.Options{
			PeriodType:       p.periodType,
			TrackBacklog:     p.trackBacklog,
			Parallelism:      uc.settings.Parallelism,
			BalanceTolerance: uc.settings.BalanceTolerance,
			Thresholds:       uc.settings.Thresholds,
			TopN:             uc.settings.TopN,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("datos de entrada inválidos")
		return nil, err
	}

	if res.DroppedDemand > 0 || res.DroppedSupply > 0 {
		log.Warn().
			Int("dropped_demand", res.DroppedDemand).
			Int("dropped_supply", res.DroppedSupply).
			Msg("filas sin fecha resoluble descartadas")
	}
	log.Info().
		Str("period_type", string(p.periodType)).
		Bool("track_backlog", p.trackBacklog).
		Int("demand_rows", len(demand)).
		Int("supply_rows", len(supply)).
		Int("result_rows", len(res.Rows)).
		Int("products", res.Summary.Overall.TotalProducts).
		Dur("elapsed", time.Since(start)).
		Msg("period gap calculado")

	return &calculation{id: id, params: p, result: res}, nil
}

// load consulta demanda y oferta en paralelo; el primer error cancela la otra consulta.
func (uc *PeriodGapUseCase) load(ctx context.Context, p params) ([]entity.DemandRecord, []entity.SupplyRecord, error) {
	var (
		demand []entity.DemandRecord
		supply []entity.SupplyRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.demandRepo.ListDemand(gctx, p.demandFilter)
		if err != nil {
			return fmt.Errorf("period gap: cargar demanda: %w", err)
		}
		demand = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.supplyRepo.ListSupply(gctx, p.supplyFilter)
		if err != nil {
			return fmt.Errorf("period gap: cargar oferta: %w", err)
		}
		supply = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return demand, supply, nil
}

// resolve aplica los valores por defecto y valida la solicitud.
func (uc *PeriodGapUseCase) resolve(req dto.PeriodGapRequest) (params, error) {
	s := uc.settings
	now := uc.now()

	ptText := req.PeriodType
	if strings.TrimSpace(ptText) == "" {
		ptText = s.DefaultPeriodType
	}
	pt, err := domaingap.ParsePeriodType(ptText)
	if err != nil {
		return params{}, err
	}

	trackBacklog := s.DefaultTrackBacklog
	if req.TrackBacklog != nil {
		trackBacklog = *req.TrackBacklog
	}
	excludeExpired := s.ExcludeExpired
	if req.ExcludeExpired != nil {
		excludeExpired = *req.ExcludeExpired
	}

	demandSources := s.DemandSources
	if len(req.DemandSources) > 0 {
		if demandSources, err = ParseDemandSources(req.DemandSources); err != nil {
			return params{}, err
		}
	}
	supplySources := s.SupplySources
	if len(req.SupplySources) > 0 {
		if supplySources, err = ParseSupplySources(req.SupplySources); err != nil {
			return params{}, err
		}
	}

	ocDate := strings.ToLower(strings.TrimSpace(req.OCDateField))
	if ocDate == "" {
		ocDate = s.OCDateField
	}
	if ocDate == "" {
		ocDate = repository.OCDateETA
	}
	if ocDate != repository.OCDateETA && ocDate != repository.OCDateETD {
		return params{}, invalid("oc_date_field", ocDate)
	}

	ref := now
	if strings.TrimSpace(req.ReferenceDate) != "" {
		t, ok := domaingap.ParseDateValue(req.ReferenceDate)
		if !ok {
			return params{}, invalid("reference_date", req.ReferenceDate)
		}
		ref = t
	}

	codes := ParseProductCodes(req.ProductCodes)
	brands := cleanBrands(req.Brands)
	return params{
		periodType:   pt,
		trackBacklog: trackBacklog,
		demandFilter: repository.DemandFilter{
			Sources:                  demandSources,
			ProductIDs:               codes,
			Brands:                   brands,
			OCDateField:              ocDate,
			IncludeConvertedForecast: req.IncludeConvertedForecast,
		},
		supplyFilter: repository.SupplyFilter{
			Sources:        supplySources,
			ProductIDs:     codes,
			Brands:         brands,
			ExcludeExpired: excludeExpired,
			Today:          now,
		},
		referenceDate: ref,
	}, nil
}

func invalid(field, value string) error {
	return &domaingap.ValidationError{Field: field, Reason: fmt.Sprintf("%q", value), Err: domain.ErrInvalidInput}
}

func sourceKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
}

// ParseDemandSources acepta "OC", "Forecast" sin distinguir mayúsculas.
func ParseDemandSources(names []string) ([]entity.DemandSource, error) {
	out := make([]entity.DemandSource, 0, len(names))
	seen := make(map[entity.DemandSource]bool)
	for _, n := range names {
		var src entity.DemandSource
		switch sourceKey(n) {
		case "oc":
			src = entity.DemandSourceOC
		case "forecast":
			src = entity.DemandSourceForecast
		default:
			return nil, invalid("demand_sources", n)
		}
		if !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	return out, nil
}

// ParseSupplySources acepta los nombres de fuente con espacios o guiones bajos, sin distinguir mayúsculas.
func ParseSupplySources(names []string) ([]entity.SupplySource, error) {
	index := make(map[string]entity.SupplySource, len(entity.AllSupplySources))
	for _, s := range entity.AllSupplySources {
		index[sourceKey(string(s))] = s
	}
	index["po"] = entity.SupplySourcePendingPO
	index["can"] = entity.SupplySourcePendingCAN
	index["wh transfer"] = entity.SupplySourceWHTransfer

	out := make([]entity.SupplySource, 0, len(names))
	seen := make(map[entity.SupplySource]bool)
	for _, n := range names {
		src, ok := index[sourceKey(n)]
		if !ok {
			return nil, invalid("supply_sources", n)
		}
		if !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	return out, nil
}

func cleanBrands(brands []string) []string {
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		if b = entity.CleanText(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// ── Filtros en memoria ─────────────────────────────────────────────────────────
// Los repositorios ya filtran en SQL; aquí se normalizan las filas y se aplica
// el mismo filtro sin distinguir mayúsculas para cualquier implementación del puerto.
// La marca se evalúa por producto: basta con que una fila del producto la declare.

func applyFilters(demand []entity.DemandRecord, supply []entity.SupplyRecord, productIDs, brands []string) ([]entity.DemandRecord, []entity.SupplyRecord) {
	var codes map[string]struct{}
	if len(productIDs) > 0 {
		codes = make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			codes[strings.ToUpper(id)] = struct{}{}
		}
	}
	keep := func(id string) bool {
		if codes == nil {
			return true
		}
		_, ok := codes[strings.ToUpper(id)]
		return ok
	}

	d := make([]entity.DemandRecord, 0, len(demand))
	for _, r := range demand {
		r.ProductID = strings.TrimSpace(r.ProductID)
		r.Attributes = r.Attributes.Normalize()
		if keep(r.ProductID) {
			d = append(d, r)
		}
	}
	s := make([]entity.SupplyRecord, 0, len(supply))
	for _, r := range supply {
		r.ProductID = strings.TrimSpace(r.ProductID)
		r.Attributes = r.Attributes.Normalize()
		if keep(r.ProductID) {
			s = append(s, r)
		}
	}
	if len(brands) == 0 {
		return d, s
	}

	wanted := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		wanted[strings.ToLower(b)] = struct{}{}
	}
	matched := make(map[string]bool)
	for _, r := range d {
		if _, ok := wanted[strings.ToLower(r.Attributes.Brand)]; ok {
			matched[r.ProductID] = true
		}
	}
	for _, r := range s {
		if _, ok := wanted[strings.ToLower(r.Attributes.Brand)]; ok {
			matched[r.ProductID] = true
		}
	}

	fd := d[:0]
	for _, r := range d {
		if matched[r.ProductID] {
			fd = append(fd, r)
		}
	}
	fs := s[:0]
	for _, r := range s {
		if matched[r.ProductID] {
			fs = append(fs, r)
		}
	}
	return fd, fs
}
