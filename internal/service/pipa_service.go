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
	"gorm.io/gorm"
)

type PipaService interface {
	Crear(ctx context.Context, req dto.CrearPipaRequest) (*dto.PipaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PipaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPipaRequest) (*dto.PipaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context) ([]dto.PipaResponse, error)
}

type pipaService struct {
	repo     repository.PipaRepository
	tipoRepo repository.TipoCombustibleRepository
}

func NewPipaService(repo repository.PipaRepository, tipoRepo repository.TipoCombustibleRepository) PipaService {
	return &pipaService{repo: repo, tipoRepo: tipoRepo}
}

func (s *pipaService) Crear(ctx context.Context, req dto.CrearPipaRequest) (*dto.PipaResponse, error) {
	exists, err := s.tipoRepo.Exists(ctx, req.TipoCombustibleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, req.TipoCombustibleID)
	}
	if req.Capacidad.IsNegative() {
		return nil, fmt.Errorf("%w: la capacidad no puede ser negativa", ErrValidacion)
	}

	p := model.Pipa{
		Placa:             req.Placa,
		Capacidad:         req.Capacidad,
		TipoCombustibleID: req.TipoCombustibleID,
		ConductorAsignado: req.ConductorAsignado,
		UbicacionActual:   req.UbicacionActual,
		Estado:            req.Estado,
	}
	if p.Estado == "" {
		p.Estado = "activa"
	}
	if p.UltimoMantenimiento, err = parseFechaOpcional(req.UltimoMantenimiento); err != nil {
		return nil, err
	}
	if p.ProximoMantenimiento, err = parseFechaOpcional(req.ProximoMantenimiento); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, &p), nil
}

func (s *pipaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PipaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pipa %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

func (s *pipaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPipaRequest) (*dto.PipaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pipa %s", ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, err
	}

	if req.Placa != nil {
		p.Placa = *req.Placa
	}
	if req.Capacidad != nil {
		if req.Capacidad.IsNegative() {
			return nil, fmt.Errorf("%w: la capacidad no puede ser negativa", ErrValidacion)
		}
		p.Capacidad = *req.Capacidad
	}
	if req.TipoCombustibleID != nil {
		exists, err := s.tipoRepo.Exists(ctx, *req.TipoCombustibleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: tipo de combustible %d", ErrNoEncontrado, *req.TipoCombustibleID)
		}
		p.TipoCombustibleID = *req.TipoCombustibleID
	}
	if req.ConductorAsignado != nil {
		p.ConductorAsignado = req.ConductorAsignado
	}
	if req.UbicacionActual != nil {
		p.UbicacionActual = req.UbicacionActual
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if req.UltimoMantenimiento != nil {
		if p.UltimoMantenimiento, err = parseFechaOpcional(req.UltimoMantenimiento); err != nil {
			return nil, err
		}
	}
	if req.ProximoMantenimiento != nil {
		if p.ProximoMantenimiento, err = parseFechaOpcional(req.ProximoMantenimiento); err != nil {
			return nil, err
		}
	}

	// Preload pointer would otherwise re-save the association.
	p.TipoCombustible = nil
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

func (s *pipaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: pipa %s", ErrNoEncontrado, id)
	} else if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *pipaService) Listar(ctx context.Context) ([]dto.PipaResponse, error) {
	pipas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PipaResponse, 0, len(pipas))
	for i := range pipas {
		resp = append(resp, *s.toResponse(ctx, &pipas[i]))
	}
	return resp, nil
}

func (s *pipaService) toResponse(ctx context.Context, p *model.Pipa) *dto.PipaResponse {
	r := dto.PipaResponse{
		ID:                   p.ID.String(),
		Placa:                p.Placa,
		Capacidad:            p.Capacidad,
		TipoCombustibleID:    p.TipoCombustibleID,
		ConductorAsignado:    p.ConductorAsignado,
		UbicacionActual:      p.UbicacionActual,
		Estado:               p.Estado,
		UltimoMantenimiento:  formatFechaOpcional(p.UltimoMantenimiento),
		ProximoMantenimiento: formatFechaOpcional(p.ProximoMantenimiento),
	}
	if p.TipoCombustible != nil {
		r.TipoCombustible = p.TipoCombustible.Nombre
	} else if tipo, err := s.tipoRepo.FindByID(ctx, p.TipoCombustibleID); err == nil {
		r.TipoCombustible = tipo.Nombre
	}
	return &r
}

func parseFechaOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	f, err := parseFecha(*s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func formatFechaOpcional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
