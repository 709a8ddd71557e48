package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	// Finalizar turns the session's cart into a persisted sale, discounting
	// product stock in the same transaction, then empties the cart.
	Finalizar(ctx context.Context, sessionID string, req dto.FinalizarVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	store        CarritoStore
}

func NewVentaService(repo repository.VentaRepository, productoRepo repository.ProductoRepository, store CarritoStore) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo, store: store}
}

func (s *ventaService) Finalizar(ctx context.Context, sessionID string, req dto.FinalizarVentaRequest) (*dto.VentaResponse, error) {
	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(carrito.Items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", ErrValidacion)
	}

	if req.Descuento != nil {
		if req.Descuento.IsNegative() {
			return nil, fmt.Errorf("%w: el descuento no puede ser negativo", ErrValidacion)
		}
		carrito.Descuento = *req.Descuento
	}

	// Pre-flight stock check outside the transaction; the conditional UPDATE
	// inside it is the real guard against concurrent sales.
	for _, it := range carrito.Items {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: producto_id inválido en el carrito", ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: producto %s", ErrNoEncontrado, it.ProductoID)
		}
		if err != nil {
			return nil, err
		}
		if p.Cantidad < it.Cantidad {
			return nil, fmt.Errorf("%w: %s (disponible %d, solicitado %d)", ErrStockInsuficiente, p.Nombre, p.Cantidad, it.Cantidad)
		}
	}

	subtotal := carrito.Subtotal()
	base := subtotal.Sub(carrito.Descuento)
	if base.IsNegative() {
		base = decimal.Zero
	}
	iva := base.Mul(tasaIVA).Round(2)

	var clienteID *uuid.UUID
	if carrito.ClienteID != nil {
		cid, err := uuid.Parse(*carrito.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id inválido", ErrValidacion)
		}
		clienteID = &cid
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			ClienteID:     clienteID,
			Fecha:         time.Now().Truncate(24 * time.Hour),
			Subtotal:      subtotal,
			IVA:           iva,
			Descuento:     carrito.Descuento,
			Total:         base.Add(iva),
			MetodoPago:    req.MetodoPago,
			Observaciones: observaciones(req.Observaciones),
		}
		for _, it := range carrito.Items {
			pid, _ := uuid.Parse(it.ProductoID)
			venta.Detalles = append(venta.Detalles, model.DetalleVenta{
				ProductoID: pid,
				Cantidad:   it.Cantidad,
				Precio:     it.Precio,
				Subtotal:   it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))),
			})
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		for _, d := range venta.Detalles {
			if err := s.productoRepo.DescontarStockTx(tx, d.ProductoID, d.Cantidad); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: producto %s", ErrStockInsuficiente, d.ProductoID)
				}
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapTx(txErr)
	}

	// The sale is committed; a failed cart cleanup only leaves a stale cart
	// that the TTL will collect.
	if err := s.store.Delete(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudo limpiar el carrito tras la venta")
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("total", venta.Total.String()).
		Msg("venta de productos finalizada")

	resp := ventaToResponse(&venta)
	for i, it := range carrito.Items {
		resp.Detalles[i].Producto = it.Nombre
	}
	return resp, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: venta %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
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

	resp := dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaToResponse(&ventas[i]))
	}
	return &resp, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	r := dto.VentaResponse{
		ID:         v.ID.String(),
		Fecha:      v.Fecha.Format("2006-01-02"),
		Subtotal:   v.Subtotal,
		IVA:        v.IVA,
		Descuento:  v.Descuento,
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
		det := dto.DetalleVentaResponse{
			Cantidad: d.Cantidad,
			Precio:   d.Precio,
			Subtotal: d.Subtotal,
		}
		if d.Producto != nil {
			det.Producto = d.Producto.Nombre
		}
		r.Detalles = append(r.Detalles, det)
	}
	return &r
}
