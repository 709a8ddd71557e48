package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioService owns the fuel ledger: the running-balance chain per fuel
// type, the forward cascade that repairs it after a correction, and the
// automatic rows appended by fuel sales.
type InventarioService interface {
	RegistrarManual(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	// RegistrarAutomaticoTx appends a sale-generated withdrawal inside the
	// caller's transaction. The row persists or rolls back with the sale.
	RegistrarAutomaticoTx(ctx context.Context, tx *gorm.DB, tipoID int64, litros decimal.Decimal, fecha time.Time) (int64, error)
	EditarManual(ctx context.Context, id int64, req dto.EditarMovimientoRequest) (*dto.MovimientoResponse, error)
	EliminarManual(ctx context.Context, id int64) error
	SaldoActual(ctx context.Context, tipoID int64) (*dto.SaldoResponse, error)
	SaldosConsolidados(ctx context.Context) (*dto.SaldosConsolidadosResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	repo     repository.InventarioRepository
	tipoRepo repository.TipoCombustibleRepository
}

func NewInventarioService(repo repository.InventarioRepository, tipoRepo repository.TipoCombustibleRepository) InventarioService {
	return &inventarioService{repo: repo, tipoRepo: tipoRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseFecha parses the wire date format shared by every endpoint.
func parseFecha(s string) (time.Time, error) {
	f, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, se espera YYYY-MM-DD", ErrValidacion, s)
	}
	return f, nil
}

func validarCantidades(valores ...decimal.Decimal) error {
	for _, v := range valores {
		if v.IsNegative() {
			return fmt.Errorf("%w: las cantidades no pueden ser negativas", ErrValidacion)
		}
	}
	return nil
}

// ── RegistrarManual ───────────────────────────────────────────────────────────

func (s *inventarioService) RegistrarManual(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if err := validarCantidades(req.InventarioInicial, req.Entrada, req.Salida); err != nil {
		return nil, err
	}
	exists, err := s.tipoRepo.Exists(ctx, req.TipoCombustibleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, req.TipoCombustibleID)
	}

	mov := model.InventarioCombustible{
		TipoCombustibleID: req.TipoCombustibleID,
		InventarioInicial: req.InventarioInicial,
		Entrada:           req.Entrada,
		Salida:            req.Salida,
		InventarioFinal:   req.InventarioInicial.Add(req.Entrada).Sub(req.Salida),
		Fecha:             fecha,
		EsAutomatico:      false,
	}

	// The insert and the forward cascade commit together. Cascading on insert
	// keeps the chain valid when a row arrives with a date earlier than
	// existing rows.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &mov); err != nil {
			return err
		}
		return s.cascada(ctx, tx, mov.TipoCombustibleID, mov.Fecha, mov.ID, mov.InventarioFinal)
	})
	if txErr != nil {
		return nil, wrapTx(txErr)
	}

	log.Info().
		Int64("movimiento_id", mov.ID).
		Int64("tipo_combustible_id", mov.TipoCombustibleID).
		Str("inventario_final", mov.InventarioFinal.String()).
		Msg("movimiento manual registrado")

	return s.toResponse(ctx, &mov), nil
}

// ── RegistrarAutomaticoTx ─────────────────────────────────────────────────────

func (s *inventarioService) RegistrarAutomaticoTx(ctx context.Context, tx *gorm.DB, tipoID int64, litros decimal.Decimal, fecha time.Time) (int64, error) {
	if litros.IsNegative() {
		return 0, fmt.Errorf("%w: los litros vendidos no pueden ser negativos", ErrValidacion)
	}

	// Opening balance is the closing of the most recent row, read inside the
	// sale's transaction so concurrent sales serialize on the same chain.
	apertura := decimal.Zero
	ultima, err := s.repo.UltimaFila(ctx, tx, tipoID)
	switch {
	case err == nil:
		apertura = ultima.InventarioFinal
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first movement for this fuel type
	default:
		return 0, err
	}

	mov := model.InventarioCombustible{
		TipoCombustibleID: tipoID,
		InventarioInicial: apertura,
		Entrada:           decimal.Zero,
		Salida:            litros,
		InventarioFinal:   apertura.Sub(litros),
		Fecha:             fecha,
		EsAutomatico:      true,
	}
	if err := s.repo.Create(ctx, tx, &mov); err != nil {
		return 0, err
	}
	return mov.ID, nil
}

// ── EditarManual ──────────────────────────────────────────────────────────────

func (s *inventarioService) EditarManual(ctx context.Context, id int64, req dto.EditarMovimientoRequest) (*dto.MovimientoResponse, error) {
	mov, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: movimiento %d", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}
	if mov.EsAutomatico {
		return nil, ErrRegistroAutomatico
	}

	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if err := validarCantidades(req.InventarioInicial, req.Entrada, req.Salida); err != nil {
		return nil, err
	}
	exists, err := s.tipoRepo.Exists(ctx, req.TipoCombustibleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, req.TipoCombustibleID)
	}

	mov.TipoCombustibleID = req.TipoCombustibleID
	mov.InventarioInicial = req.InventarioInicial
	mov.Entrada = req.Entrada
	mov.Salida = req.Salida
	mov.InventarioFinal = req.InventarioInicial.Add(req.Entrada).Sub(req.Salida)
	mov.Fecha = fecha

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, mov); err != nil {
			return err
		}
		return s.cascada(ctx, tx, mov.TipoCombustibleID, mov.Fecha, mov.ID, mov.InventarioFinal)
	})
	if txErr != nil {
		return nil, wrapTx(txErr)
	}

	log.Info().Int64("movimiento_id", id).Msg("movimiento editado, cascada aplicada")
	return s.toResponse(ctx, mov), nil
}

// ── EliminarManual ────────────────────────────────────────────────────────────

// EliminarManual removes a manual row and re-chains every later row of the
// same fuel type onto the deleted row's opening balance. A delete without the
// cascade would leave later openings pointing at a missing row, so a delete is
// treated like an edit.
func (s *inventarioService) EliminarManual(ctx context.Context, id int64) error {
	mov, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: movimiento %d", ErrNoEncontrado, id)
	}
	if err != nil {
		return err
	}
	if mov.EsAutomatico {
		return ErrRegistroAutomatico
	}

	// The deleted row's opening equals its predecessor's closing (or 0 at the
	// head), so it seeds the sweep without another lookup.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.cascada(ctx, tx, mov.TipoCombustibleID, mov.Fecha, mov.ID, mov.InventarioInicial)
	})
	if txErr != nil {
		return wrapTx(txErr)
	}

	log.Info().Int64("movimiento_id", id).Msg("movimiento eliminado, cascada aplicada")
	return nil
}

// ── cascada ───────────────────────────────────────────────────────────────────

// cascada rewrites every row of the fuel type strictly after (fecha, id) in
// chronological order: each row's opening becomes the carried balance and its
// closing is recomputed from its own entrada/salida. The carried balance seeds
// from the anchor row's closing (or its opening, when the anchor was deleted).
// Runs inside the caller's transaction so a failed sweep leaves the ledger
// untouched.
func (s *inventarioService) cascada(ctx context.Context, tx *gorm.DB, tipoID int64, fecha time.Time, id int64, saldo decimal.Decimal) error {
	filas, err := s.repo.Posteriores(ctx, tx, tipoID, fecha, id)
	if err != nil {
		return err
	}
	for i := range filas {
		filas[i].InventarioInicial = saldo
		filas[i].InventarioFinal = saldo.Add(filas[i].Entrada).Sub(filas[i].Salida)
		saldo = filas[i].InventarioFinal
		if err := s.repo.Update(ctx, tx, &filas[i]); err != nil {
			return err
		}
	}
	if len(filas) > 0 {
		log.Debug().Int("filas", len(filas)).Int64("tipo_combustible_id", tipoID).Msg("cascada de saldos")
	}
	return nil
}

// ── Saldos ────────────────────────────────────────────────────────────────────

// SaldoActual returns the canonical running balance: the closing of the most
// recent row plus the net of any rows dated strictly after it. The second term
// corrects for out-of-order inserts and is zero on a well-ordered ledger.
func (s *inventarioService) SaldoActual(ctx context.Context, tipoID int64) (*dto.SaldoResponse, error) {
	tipo, err := s.tipoRepo.FindByID(ctx, tipoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, tipoID)
	}
	if err != nil {
		return nil, err
	}

	saldo := decimal.Zero
	ultima, err := s.repo.UltimaFila(ctx, nil, tipoID)
	switch {
	case err == nil:
		neto, err := s.repo.NetoDespuesDe(ctx, tipoID, ultima.Fecha)
		if err != nil {
			return nil, err
		}
		saldo = ultima.InventarioFinal.Add(neto)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// empty ledger, balance 0
	default:
		return nil, err
	}

	return &dto.SaldoResponse{TipoCombustibleID: tipoID, Nombre: tipo.Nombre, Saldo: saldo}, nil
}

// SaldosConsolidados is the diagnostic aggregate for dashboards: the raw net
// of entradas minus salidas per fuel type. It disagrees with SaldoActual when
// opening balances were seeded manually, which is why it is exposed separately.
func (s *inventarioService) SaldosConsolidados(ctx context.Context) (*dto.SaldosConsolidadosResponse, error) {
	agregados, err := s.repo.SumEntradasSalidas(ctx)
	if err != nil {
		return nil, err
	}
	saldos := make(map[string]decimal.Decimal, len(agregados))
	for _, a := range agregados {
		saldos[a.Nombre] = a.Neto
	}
	return &dto.SaldosConsolidadosResponse{Saldos: saldos}, nil
}

// ── Listado ───────────────────────────────────────────────────────────────────

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	filas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.MovimientoListResponse{
		Data:  make([]dto.MovimientoResponse, 0, len(filas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range filas {
		resp.Data = append(resp.Data, *movimientoToResponse(&filas[i]))
	}
	return &resp, nil
}

func movimientoToResponse(m *model.InventarioCombustible) *dto.MovimientoResponse {
	r := dto.MovimientoResponse{
		ID:                m.ID,
		TipoCombustibleID: m.TipoCombustibleID,
		InventarioInicial: m.InventarioInicial,
		Entrada:           m.Entrada,
		Salida:            m.Salida,
		InventarioFinal:   m.InventarioFinal,
		Fecha:             m.Fecha.Format("2006-01-02"),
		EsAutomatico:      m.EsAutomatico,
	}
	if m.TipoCombustible != nil {
		r.NombreTipo = m.TipoCombustible.Nombre
	}
	return &r
}

func (s *inventarioService) toResponse(ctx context.Context, m *model.InventarioCombustible) *dto.MovimientoResponse {
	r := movimientoToResponse(m)
	if r.NombreTipo == "" {
		if tipo, err := s.tipoRepo.FindByID(ctx, m.TipoCombustibleID); err == nil {
			r.NombreTipo = tipo.Nombre
		}
	}
	return r
}
