package service

import (
	"context"
	"errors"
	"fmt"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// tasaIVA is the Guatemalan VAT applied on product sales.
var tasaIVA = decimal.NewFromFloat(0.12)

// CarritoStore persists the per-session cart. The production implementation
// lives on Redis with a TTL; tests use an in-memory map.
type CarritoStore interface {
	// Get returns the session's cart, or an empty cart when none exists.
	Get(ctx context.Context, sessionID string) (*model.Carrito, error)
	Save(ctx context.Context, sessionID string, c *model.Carrito) error
	Delete(ctx context.Context, sessionID string) error
}

type CarritoService interface {
	Ver(ctx context.Context, sessionID string) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, sessionID string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	ActualizarItem(ctx context.Context, sessionID, productoID string, req dto.ActualizarItemRequest) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, sessionID, productoID string) (*dto.CarritoResponse, error)
	Actualizar(ctx context.Context, sessionID string, req dto.ActualizarCarritoRequest) (*dto.CarritoResponse, error)
	Cancelar(ctx context.Context, sessionID string) error
}

type carritoService struct {
	store        CarritoStore
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
}

func NewCarritoService(store CarritoStore, productoRepo repository.ProductoRepository, clienteRepo repository.ClienteRepository) CarritoService {
	return &carritoService{store: store, productoRepo: productoRepo, clienteRepo: clienteRepo}
}

func (s *carritoService) Ver(ctx context.Context, sessionID string) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, sessionID string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("%w: producto_id inválido", ErrValidacion)
	}
	producto, err := s.productoRepo.FindByID(ctx, pid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: producto %s", ErrNoEncontrado, req.ProductoID)
	}
	if err != nil {
		return nil, err
	}

	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	carrito.Agregar(model.ItemCarrito{
		ProductoID: producto.ID.String(),
		Codigo:     producto.Codigo,
		Nombre:     producto.Nombre,
		Precio:     producto.Precio,
		Cantidad:   req.Cantidad,
	})
	if err := s.store.Save(ctx, sessionID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) ActualizarItem(ctx context.Context, sessionID, productoID string, req dto.ActualizarItemRequest) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	encontrado := false
	for i := range carrito.Items {
		if carrito.Items[i].ProductoID == productoID {
			carrito.Items[i].Cantidad = req.Cantidad
			encontrado = true
			break
		}
	}
	if !encontrado {
		return nil, fmt.Errorf("%w: producto %s no está en el carrito", ErrNoEncontrado, productoID)
	}
	if err := s.store.Save(ctx, sessionID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) QuitarItem(ctx context.Context, sessionID, productoID string) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !carrito.Quitar(productoID) {
		return nil, fmt.Errorf("%w: producto %s no está en el carrito", ErrNoEncontrado, productoID)
	}
	if err := s.store.Save(ctx, sessionID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) Actualizar(ctx context.Context, sessionID string, req dto.ActualizarCarritoRequest) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id inválido", ErrValidacion)
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cliente %s", ErrNoEncontrado, *req.ClienteID)
		} else if err != nil {
			return nil, err
		}
		carrito.ClienteID = req.ClienteID
	}
	if req.MetodoPago != nil {
		carrito.MetodoPago = *req.MetodoPago
	}
	if req.Observaciones != nil {
		carrito.Observaciones = *req.Observaciones
	}
	if req.Descuento != nil {
		if req.Descuento.IsNegative() {
			return nil, fmt.Errorf("%w: el descuento no puede ser negativo", ErrValidacion)
		}
		carrito.Descuento = *req.Descuento
	}
	if err := s.store.Save(ctx, sessionID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) Cancelar(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// carritoToResponse derives the money summary: IVA applies on the subtotal
// after discount.
func carritoToResponse(c *model.Carrito) *dto.CarritoResponse {
	subtotal := c.Subtotal()
	base := subtotal.Sub(c.Descuento)
	if base.IsNegative() {
		base = decimal.Zero
	}
	iva := base.Mul(tasaIVA).Round(2)

	resp := dto.CarritoResponse{
		Items:         make([]dto.ItemCarritoResponse, 0, len(c.Items)),
		ClienteID:     c.ClienteID,
		MetodoPago:    c.MetodoPago,
		Observaciones: c.Observaciones,
		Subtotal:      subtotal,
		Descuento:     c.Descuento,
		IVA:           iva,
		Total:         base.Add(iva),
	}
	for _, it := range c.Items {
		resp.Items = append(resp.Items, dto.ItemCarritoResponse{
			ProductoID: it.ProductoID,
			Codigo:     it.Codigo,
			Nombre:     it.Nombre,
			Precio:     it.Precio,
			Cantidad:   it.Cantidad,
			Subtotal:   it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))),
		})
	}
	return &resp
}
