package service

import (
	"context"
	"errors"
	"fmt"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaCombustibleService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentaCombustibleRequest) (*dto.VentaCombustibleResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaCombustibleResponse, error)
	Listar(ctx context.Context, filter dto.VentaCombustibleFilter) (*dto.VentaCombustibleListResponse, error)
}

type ventaCombustibleService struct {
	repo        repository.VentaCombustibleRepository
	clienteRepo repository.ClienteRepository
	tipoRepo    repository.TipoCombustibleRepository
	inventario  InventarioService
}

func NewVentaCombustibleService(
	repo repository.VentaCombustibleRepository,
	clienteRepo repository.ClienteRepository,
	tipoRepo repository.TipoCombustibleRepository,
	inventario InventarioService,
) VentaCombustibleService {
	return &ventaCombustibleService{
		repo:        repo,
		clienteRepo: clienteRepo,
		tipoRepo:    tipoRepo,
		inventario:  inventario,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// One ACID transaction covers the sale header, its line items, and one
// automatic ledger withdrawal per line. If any write fails nothing persists.

func (s *ventaCombustibleService) Registrar(ctx context.Context, req dto.RegistrarVentaCombustibleRequest) (*dto.VentaCombustibleResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente_id inválido", ErrValidacion)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cliente %s", ErrNoEncontrado, req.ClienteID)
	}
	if err != nil {
		return nil, err
	}

	// Pre-flight: resolve each fuel type and normalize the line to liters.
	// A line may come as liters or as an amount in quetzales; the missing
	// side is derived from the pump price.
	type lineaResuelta struct {
		tipoID   int64
		nombre   string
		precio   decimal.Decimal
		litros   decimal.Decimal
		monto    decimal.Decimal
		subtotal decimal.Decimal
	}

	var lineas []lineaResuelta
	total := decimal.Zero
	for _, d := range req.Detalles {
		tipo, err := s.tipoRepo.FindByID(ctx, d.TipoCombustibleID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, d.TipoCombustibleID)
		}
		if err != nil {
			return nil, err
		}
		if d.CantidadLitros.IsNegative() || d.MontoQuetzales.IsNegative() {
			return nil, fmt.Errorf("%w: las cantidades no pueden ser negativas", ErrValidacion)
		}

		litros := d.CantidadLitros
		monto := d.MontoQuetzales
		switch {
		case litros.IsPositive():
			monto = tipo.Precio.Mul(litros)
		case monto.IsPositive():
			if tipo.Precio.IsZero() {
				return nil, fmt.Errorf("%w: %s no tiene precio configurado", ErrValidacion, tipo.Nombre)
			}
			litros = monto.DivRound(tipo.Precio, 2)
		default:
			return nil, fmt.Errorf("%w: indique litros o monto para %s", ErrValidacion, tipo.Nombre)
		}

		total = total.Add(monto)
		lineas = append(lineas, lineaResuelta{
			tipoID:   d.TipoCombustibleID,
			nombre:   tipo.Nombre,
			precio:   tipo.Precio,
			litros:   litros,
			monto:    monto,
			subtotal: monto,
		})
	}

	var venta model.VentaCombustible
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.VentaCombustible{
			ClienteID:     clienteID,
			Fecha:         fecha,
			Total:         total,
			MetodoPago:    req.MetodoPago,
			Observaciones: observaciones(req.Observaciones),
		}
		for _, l := range lineas {
			venta.Detalles = append(venta.Detalles, model.DetalleVentaCombustible{
				TipoCombustibleID: l.tipoID,
				PrecioUnitario:    l.precio,
				CantidadLitros:    l.litros,
				MontoQuetzales:    l.monto,
				Subtotal:          l.subtotal,
			})
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// One automatic ledger withdrawal per line, same transaction.
		for _, l := range lineas {
			if _, err := s.inventario.RegistrarAutomaticoTx(ctx, tx, l.tipoID, l.litros, fecha); err != nil {
				return fmt.Errorf("registrando salida de %s: %w", l.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapTx(txErr)
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("total", total.String()).
		Int("detalles", len(lineas)).
		Msg("venta de combustible registrada")

	resp := ventaCombustibleToResponse(&venta)
	resp.Cliente = cliente.Nombre
	for i, l := range lineas {
		resp.Detalles[i].TipoCombustible = l.nombre
	}
	return resp, nil
}

func (s *ventaCombustibleService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaCombustibleResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: venta %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}
	return ventaCombustibleToResponse(venta), nil
}

func (s *ventaCombustibleService) Listar(ctx context.Context, filter dto.VentaCombustibleFilter) (*dto.VentaCombustibleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.VentaCombustibleListResponse{
		Data:         make([]dto.VentaCombustibleResponse, 0, len(ventas)),
		Total:        total,
		Page:         filter.Page,
		TotalPaginas: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaCombustibleToResponse(&ventas[i]))
	}
	return &resp, nil
}

func ventaCombustibleToResponse(v *model.VentaCombustible) *dto.VentaCombustibleResponse {
	r := dto.VentaCombustibleResponse{
		ID:         v.ID.String(),
		Fecha:      v.Fecha.Format("2006-01-02"),
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
	}
	if v.Observaciones != nil {
		r.Observaciones = *v.Observaciones
	}
	if v.Cliente != nil {
		r.Cliente = v.Cliente.Nombre
	}
	for _, d := range v.Detalles {
		det := dto.DetalleCombustibleResponse{
			PrecioUnitario: d.PrecioUnitario,
			CantidadLitros: d.CantidadLitros,
			MontoQuetzales: d.MontoQuetzales,
			Subtotal:       d.Subtotal,
		}
		if d.TipoCombustible != nil {
			det.TipoCombustible = d.TipoCombustible.Nombre
		}
		r.Detalles = append(r.Detalles, det)
	}
	return &r
}

func observaciones(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
