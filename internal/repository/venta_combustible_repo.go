package repository

import (
	"context"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaCombustibleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.VentaCombustible) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VentaCombustible, error)
	List(ctx context.Context, filter dto.VentaCombustibleFilter) ([]model.VentaCombustible, int64, error)
	ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.VentaCombustible, error)
	TotalDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
	LitrosPorMes(ctx context.Context, filter dto.EstadisticasFilter) ([]dto.VentaMensualCombustible, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaCombustibleRepo struct{ db *gorm.DB }

func NewVentaCombustibleRepository(db *gorm.DB) VentaCombustibleRepository {
	return &ventaCombustibleRepo{db: db}
}

func (r *ventaCombustibleRepo) DB() *gorm.DB { return r.db }

func (r *ventaCombustibleRepo) Create(ctx context.Context, tx *gorm.DB, v *model.VentaCombustible) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaCombustibleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.VentaCombustible, error) {
	var v model.VentaCombustible
	err := r.db.WithContext(ctx).
		Preload("Detalles.TipoCombustible").Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaCombustibleRepo) List(ctx context.Context, filter dto.VentaCombustibleFilter) ([]model.VentaCombustible, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.VentaCombustible{})
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Fecha != "" {
		q = q.Where("fecha = ?", filter.Fecha)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var ventas []model.VentaCombustible
	err := q.Preload("Detalles.TipoCombustible").Preload("Cliente").
		Order("fecha DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaCombustibleRepo) ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.VentaCombustible, error) {
	var ventas []model.VentaCombustible
	err := r.db.WithContext(ctx).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Preload("Detalles.TipoCombustible").Preload("Cliente").
		Order("fecha ASC, created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaCombustibleRepo) TotalDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.VentaCombustible{}).
		Where("fecha = ?", fecha).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ventaCombustibleRepo) LitrosPorMes(ctx context.Context, filter dto.EstadisticasFilter) ([]dto.VentaMensualCombustible, error) {
	q := r.db.WithContext(ctx).Model(&model.DetalleVentaCombustible{}).
		Select(`EXTRACT(MONTH FROM ventas_combustible.fecha)::int AS mes,
			EXTRACT(YEAR FROM ventas_combustible.fecha)::int AS anio,
			tipos_combustible.nombre AS tipo_combustible,
			COALESCE(SUM(detalle_venta_combustible.cantidad_litros), 0) AS total_litros`).
		Joins("JOIN ventas_combustible ON ventas_combustible.id = detalle_venta_combustible.venta_combustible_id").
		Joins("JOIN tipos_combustible ON tipos_combustible.id = detalle_venta_combustible.tipo_combustible_id").
		Group("mes, anio, tipos_combustible.nombre").
		Order("anio ASC, mes ASC")

	if filter.ClienteID != "" {
		q = q.Where("ventas_combustible.cliente_id = ?", filter.ClienteID)
	}
	if filter.Mes != 0 {
		q = q.Where("EXTRACT(MONTH FROM ventas_combustible.fecha) = ?", filter.Mes)
	}
	if filter.Anio != 0 {
		q = q.Where("EXTRACT(YEAR FROM ventas_combustible.fecha) = ?", filter.Anio)
	}

	var series []dto.VentaMensualCombustible
	err := q.Scan(&series).Error
	return series, err
}
