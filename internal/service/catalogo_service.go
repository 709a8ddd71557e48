package service

import (
	"context"
	"errors"
	"fmt"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"gorm.io/gorm"
)

// CatalogoService covers the small reference tables: fuel types and clients.
type CatalogoService interface {
	ListarTiposCombustible(ctx context.Context) ([]dto.TipoCombustibleResponse, error)
	ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error)
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
}

type catalogoService struct {
	tipoRepo    repository.TipoCombustibleRepository
	clienteRepo repository.ClienteRepository
}

func NewCatalogoService(tipoRepo repository.TipoCombustibleRepository, clienteRepo repository.ClienteRepository) CatalogoService {
	return &catalogoService{tipoRepo: tipoRepo, clienteRepo: clienteRepo}
}

func (s *catalogoService) ListarTiposCombustible(ctx context.Context) ([]dto.TipoCombustibleResponse, error) {
	tipos, err := s.tipoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoCombustibleResponse, 0, len(tipos))
	for _, t := range tipos {
		resp = append(resp, dto.TipoCombustibleResponse{ID: t.ID, Nombre: t.Nombre, Precio: t.Precio})
	}
	return resp, nil
}

func (s *catalogoService) ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.clienteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		resp = append(resp, dto.ClienteResponse{ID: c.ID.String(), Nombre: c.Nombre})
	}
	return resp, nil
}

func (s *catalogoService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.clienteRepo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con nombre %q", ErrValidacion, req.Nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := model.Cliente{Nombre: req.Nombre}
	if err := s.clienteRepo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &dto.ClienteResponse{ID: c.ID.String(), Nombre: c.Nombre}, nil
}
