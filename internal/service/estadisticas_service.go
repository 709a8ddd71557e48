package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardCacheKey = "estadisticas:dashboard"
	dashboardCacheTTL = time.Minute
)

type EstadisticasService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	VentasCombustiblePorMes(ctx context.Context, filter dto.EstadisticasFilter) ([]dto.VentaMensualCombustible, error)
	TopProductos(ctx context.Context, limit int) ([]dto.ProductoVendido, error)
}

type estadisticasService struct {
	inventarioRepo repository.InventarioRepository
	ventaRepo      repository.VentaRepository
	ventaCombRepo  repository.VentaCombustibleRepository
	inventario     InventarioService
	rdb            *redis.Client
}

func NewEstadisticasService(
	inventarioRepo repository.InventarioRepository,
	ventaRepo repository.VentaRepository,
	ventaCombRepo repository.VentaCombustibleRepository,
	inventario InventarioService,
	rdb *redis.Client,
) EstadisticasService {
	return &estadisticasService{
		inventarioRepo: inventarioRepo,
		ventaRepo:      ventaRepo,
		ventaCombRepo:  ventaCombRepo,
		inventario:     inventario,
		rdb:            rdb,
	}
}

// Dashboard aggregates today's indicators. The result is cached in Redis for
// one minute: the home screen polls it and the queries span four tables.
func (s *estadisticasService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("cache de dashboard no disponible")
		}
	}

	hoy := time.Now().Truncate(24 * time.Hour)

	totalProductos, err := s.ventaRepo.TotalDelDia(ctx, hoy)
	if err != nil {
		return nil, err
	}
	totalCombustible, err := s.ventaCombRepo.TotalDelDia(ctx, hoy)
	if err != nil {
		return nil, err
	}
	litros, err := s.inventarioRepo.SalidasDelDia(ctx, hoy)
	if err != nil {
		return nil, err
	}
	unidades, err := s.ventaRepo.UnidadesDelDia(ctx, hoy)
	if err != nil {
		return nil, err
	}
	consolidado, err := s.inventario.SaldosConsolidados(ctx)
	if err != nil {
		return nil, err
	}

	resp := dto.DashboardResponse{
		VentasTotalesHoy:      totalProductos.Add(totalCombustible),
		LitrosDistribuidosHoy: litros,
		ProductosVendidosHoy:  unidades,
		InventarioConsolidado: consolidado.Saldos,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
			}
		}
	}
	return &resp, nil
}

func (s *estadisticasService) VentasCombustiblePorMes(ctx context.Context, filter dto.EstadisticasFilter) ([]dto.VentaMensualCombustible, error) {
	return s.ventaCombRepo.LitrosPorMes(ctx, filter)
}

func (s *estadisticasService) TopProductos(ctx context.Context, limit int) ([]dto.ProductoVendido, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.ventaRepo.TopProductos(ctx, limit)
}
