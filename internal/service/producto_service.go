package service

import (
	"context"
	"errors"
	"fmt"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", ErrValidacion)
	}
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, fmt.Errorf("%w: ya existe un producto con código %s", ErrValidacion, req.Codigo)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := model.Producto{
		Codigo:   req.Codigo,
		Nombre:   req.Nombre,
		Precio:   req.Precio,
		Cantidad: req.Cantidad,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: producto %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: producto %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}

	if req.Codigo != nil {
		p.Codigo = *req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", ErrValidacion)
		}
		p.Precio = *req.Precio
	}
	if req.Cantidad != nil {
		p.Cantidad = *req.Cantidad
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: producto %s", ErrNoEncontrado, id)
	} else if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range productos {
		resp.Data = append(resp.Data, *productoToResponse(&productos[i]))
	}
	return &resp, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:       p.ID.String(),
		Codigo:   p.Codigo,
		Nombre:   p.Nombre,
		Precio:   p.Precio,
		Cantidad: p.Cantidad,
	}
}
