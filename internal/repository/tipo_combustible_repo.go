package repository

import (
	"context"
	"errors"

	"gasolinera/internal/model"

	"gorm.io/gorm"
)

type TipoCombustibleRepository interface {
	List(ctx context.Context) ([]model.TipoCombustible, error)
	FindByID(ctx context.Context, id int64) (*model.TipoCombustible, error)
	FindByNombre(ctx context.Context, nombre string) (*model.TipoCombustible, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type tipoCombustibleRepo struct{ db *gorm.DB }

func NewTipoCombustibleRepository(db *gorm.DB) TipoCombustibleRepository {
	return &tipoCombustibleRepo{db: db}
}

func (r *tipoCombustibleRepo) List(ctx context.Context) ([]model.TipoCombustible, error) {
	var tipos []model.TipoCombustible
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoCombustibleRepo) FindByID(ctx context.Context, id int64) (*model.TipoCombustible, error) {
	var t model.TipoCombustible
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *tipoCombustibleRepo) FindByNombre(ctx context.Context, nombre string) (*model.TipoCombustible, error) {
	var t model.TipoCombustible
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&t).Error
	return &t, err
}

func (r *tipoCombustibleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
