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

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)
	TotalDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
	UnidadesDelDia(ctx context.Context, fecha time.Time) (int64, error)
	TopProductos(ctx context.Context, limit int) ([]dto.ProductoVendido, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Fecha != "" {
		q = q.Where("fecha = ?", filter.Fecha)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var ventas []model.Venta
	err := q.Preload("Detalles.Producto").Preload("Cliente").
		Order("fecha DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Preload("Detalles.Producto").Preload("Cliente").
		Order("fecha ASC, created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) TotalDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("fecha = ?", fecha).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ventaRepo) UnidadesDelDia(ctx context.Context, fecha time.Time) (int64, error) {
	var unidades int64
	err := r.db.WithContext(ctx).Model(&model.DetalleVenta{}).
		Joins("JOIN ventas ON ventas.id = detalle_venta.venta_id").
		Where("ventas.fecha = ?", fecha).
		Select("COALESCE(SUM(detalle_venta.cantidad), 0)").
		Scan(&unidades).Error
	return unidades, err
}

func (r *ventaRepo) TopProductos(ctx context.Context, limit int) ([]dto.ProductoVendido, error) {
	var top []dto.ProductoVendido
	err := r.db.WithContext(ctx).Model(&model.DetalleVenta{}).
		Select("productos.nombre, SUM(detalle_venta.cantidad) AS cantidad").
		Joins("JOIN productos ON productos.id = detalle_venta.producto_id").
		Group("productos.nombre").
		Order("cantidad DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}
