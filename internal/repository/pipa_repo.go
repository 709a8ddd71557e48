package repository

import (
	"context"

	"gasolinera/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PipaRepository interface {
	Create(ctx context.Context, p *model.Pipa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pipa, error)
	Update(ctx context.Context, p *model.Pipa) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Pipa, error)
}

type pipaRepo struct{ db *gorm.DB }

func NewPipaRepository(db *gorm.DB) PipaRepository { return &pipaRepo{db: db} }

func (r *pipaRepo) Create(ctx context.Context, p *model.Pipa) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pipaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pipa, error) {
	var p model.Pipa
	err := r.db.WithContext(ctx).Preload("TipoCombustible").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pipaRepo) Update(ctx context.Context, p *model.Pipa) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pipaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pipa{}, "id = ?", id).Error
}

func (r *pipaRepo) List(ctx context.Context) ([]model.Pipa, error) {
	var pipas []model.Pipa
	err := r.db.WithContext(ctx).Preload("TipoCombustible").Order("placa ASC").Find(&pipas).Error
	return pipas, err
}
