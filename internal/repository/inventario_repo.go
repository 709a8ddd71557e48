package repository

import (
	"context"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaldoAgregado is the per-fuel-type net of all entradas minus salidas.
// It is a diagnostic aggregate, not the running balance.
type SaldoAgregado struct {
	TipoCombustibleID int64
	Nombre            string
	Neto              decimal.Decimal
}

type InventarioRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.InventarioCombustible) error
	FindByID(ctx context.Context, id int64) (*model.InventarioCombustible, error)
	Update(ctx context.Context, tx *gorm.DB, m *model.InventarioCombustible) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error

	// UltimaFila returns the most recent row for the fuel type ordered by
	// (fecha DESC, id DESC), or gorm.ErrRecordNotFound on an empty ledger.
	UltimaFila(ctx context.Context, tx *gorm.DB, tipoID int64) (*model.InventarioCombustible, error)

	// Posteriores returns every row of the fuel type strictly after (fecha, id),
	// ordered (fecha ASC, id ASC). This is the cascade sweep set.
	Posteriores(ctx context.Context, tx *gorm.DB, tipoID int64, fecha time.Time, id int64) ([]model.InventarioCombustible, error)

	// NetoDespuesDe sums entrada-salida over rows of the fuel type dated
	// strictly after fecha.
	NetoDespuesDe(ctx context.Context, tipoID int64, fecha time.Time) (decimal.Decimal, error)

	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.InventarioCombustible, int64, error)
	ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.InventarioCombustible, error)
	SumEntradasSalidas(ctx context.Context) ([]SaldoAgregado, error)
	SalidasDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository {
	return &inventarioRepo{db: db}
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }

// conn picks the transaction handle when one is open.
func (r *inventarioRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *inventarioRepo) Create(ctx context.Context, tx *gorm.DB, m *model.InventarioCombustible) error {
	return r.conn(tx).WithContext(ctx).Create(m).Error
}

func (r *inventarioRepo) FindByID(ctx context.Context, id int64) (*model.InventarioCombustible, error) {
	var m model.InventarioCombustible
	err := r.db.WithContext(ctx).Preload("TipoCombustible").First(&m, id).Error
	return &m, err
}

func (r *inventarioRepo) Update(ctx context.Context, tx *gorm.DB, m *model.InventarioCombustible) error {
	// Select forces zero-valued quantities (entrada=0, salida=0) to be written.
	return r.conn(tx).WithContext(ctx).Model(m).
		Select("TipoCombustibleID", "InventarioInicial", "Entrada", "Salida", "InventarioFinal", "Fecha").
		Updates(m).Error
}

func (r *inventarioRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	return r.conn(tx).WithContext(ctx).Delete(&model.InventarioCombustible{}, id).Error
}

func (r *inventarioRepo) UltimaFila(ctx context.Context, tx *gorm.DB, tipoID int64) (*model.InventarioCombustible, error) {
	var m model.InventarioCombustible
	err := r.conn(tx).WithContext(ctx).
		Where("tipo_combustible_id = ?", tipoID).
		Order("fecha DESC, id DESC").
		First(&m).Error
	return &m, err
}

func (r *inventarioRepo) Posteriores(ctx context.Context, tx *gorm.DB, tipoID int64, fecha time.Time, id int64) ([]model.InventarioCombustible, error) {
	var filas []model.InventarioCombustible
	err := r.conn(tx).WithContext(ctx).
		Where("tipo_combustible_id = ? AND (fecha > ? OR (fecha = ? AND id > ?))", tipoID, fecha, fecha, id).
		Order("fecha ASC, id ASC").
		Find(&filas).Error
	return filas, err
}

func (r *inventarioRepo) NetoDespuesDe(ctx context.Context, tipoID int64, fecha time.Time) (decimal.Decimal, error) {
	var neto decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.InventarioCombustible{}).
		Where("tipo_combustible_id = ? AND fecha > ?", tipoID, fecha).
		Select("COALESCE(SUM(entrada - salida), 0)").
		Scan(&neto).Error
	return neto, err
}

func (r *inventarioRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.InventarioCombustible, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.InventarioCombustible{})
	if filter.Mes != 0 {
		q = q.Where("EXTRACT(MONTH FROM fecha) = ?", filter.Mes)
	}
	if filter.Anio != 0 {
		q = q.Where("EXTRACT(YEAR FROM fecha) = ?", filter.Anio)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var filas []model.InventarioCombustible
	err := q.Preload("TipoCombustible").
		Order("fecha DESC, id DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&filas).Error
	return filas, total, err
}

func (r *inventarioRepo) ListByRange(ctx context.Context, desde, hasta time.Time) ([]model.InventarioCombustible, error) {
	var filas []model.InventarioCombustible
	err := r.db.WithContext(ctx).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Preload("TipoCombustible").
		Order("fecha ASC, id ASC").
		Find(&filas).Error
	return filas, err
}

func (r *inventarioRepo) SumEntradasSalidas(ctx context.Context) ([]SaldoAgregado, error) {
	var saldos []SaldoAgregado
	err := r.db.WithContext(ctx).Model(&model.InventarioCombustible{}).
		Select("inventario_combustible.tipo_combustible_id, tipos_combustible.nombre, COALESCE(SUM(entrada - salida), 0) AS neto").
		Joins("JOIN tipos_combustible ON tipos_combustible.id = inventario_combustible.tipo_combustible_id").
		Group("inventario_combustible.tipo_combustible_id, tipos_combustible.nombre").
		Scan(&saldos).Error
	return saldos, err
}

func (r *inventarioRepo) SalidasDelDia(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.InventarioCombustible{}).
		Where("fecha = ? AND es_automatico = TRUE", fecha).
		Select("COALESCE(SUM(salida), 0)").
		Scan(&total).Error
	return total, err
}
