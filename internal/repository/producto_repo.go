package repository

import (
	"context"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListAll(ctx context.Context) ([]model.Producto, error)
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

// sortable whitelists the columns the catalog screen may order by.
var sortable = map[string]string{
	"codigo":   "codigo",
	"nombre":   "nombre",
	"precio":   "precio",
	"cantidad": "cantidad",
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Busqueda != "" {
		patron := "%" + filter.Busqueda + "%"
		q = q.Where("codigo ILIKE ? OR nombre ILIKE ?", patron, patron)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortable[filter.OrdenPor]
	if !ok {
		col = "nombre"
	}
	dir := "ASC"
	if filter.Orden == "desc" {
		dir = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	var productos []model.Producto
	err := q.Order(col + " " + dir).Offset(offset).Limit(filter.Limit).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListAll(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

// DescontarStockTx decrements stock atomically, guarding against oversell.
func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND cantidad >= ?", id, cantidad).
		UpdateColumn("cantidad", gorm.Expr("cantidad - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
