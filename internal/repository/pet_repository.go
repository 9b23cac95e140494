package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type PetRepository interface {
	WithTx(tx *gorm.DB) PetRepository
	FindAllItems(ctx context.Context) ([]model.PetItem, error)
	FindItemByID(ctx context.Context, id uint) (*model.PetItem, error)
	AddOwnership(ctx context.Context, ownership *model.StudentPetItem) error
	FindOwnedItems(ctx context.Context, studentID string) ([]model.StudentPetItem, error)
}

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) WithTx(tx *gorm.DB) PetRepository {
	return &petRepository{db: tx}
}

func (r *petRepository) FindAllItems(ctx context.Context) ([]model.PetItem, error) {
	var items []model.PetItem
	if err := r.db.WithContext(ctx).Order("unlock_level ASC").Order("cost ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *petRepository) FindItemByID(ctx context.Context, id uint) (*model.PetItem, error) {
	var item model.PetItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *petRepository) AddOwnership(ctx context.Context, ownership *model.StudentPetItem) error {
	return r.db.WithContext(ctx).Omit("Item").Create(ownership).Error
}

func (r *petRepository) FindOwnedItems(ctx context.Context, studentID string) ([]model.StudentPetItem, error) {
	var owned []model.StudentPetItem
	err := r.db.WithContext(ctx).Preload("Item").
		Where("student_id = ?", studentID).
		Order("purchased_at DESC").Order("id DESC").
		Find(&owned).Error
	if err != nil {
		return nil, err
	}
	return owned, nil
}
