package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PetService interface {
	ListItems(ctx context.Context) ([]dto.PetItemResponse, error)
	Purchase(ctx context.Context, studentID string, itemID uint) (*dto.PurchaseResponse, error)
	Inventory(ctx context.Context, studentID string) ([]dto.OwnedPetItemResponse, error)
}

type petService struct {
	db          *gorm.DB
	petRepo     repository.PetRepository
	studentRepo repository.StudentRepository
}

func NewPetService(db *gorm.DB, petRepo repository.PetRepository, studentRepo repository.StudentRepository) PetService {
	return &petService{db: db, petRepo: petRepo, studentRepo: studentRepo}
}

func (s *petService) ListItems(ctx context.Context) ([]dto.PetItemResponse, error) {
	items, err := s.petRepo.FindAllItems(ctx)
	if err != nil {
		return nil, storeError("pet.ListItems", err)
	}
	resp := make([]dto.PetItemResponse, 0, len(items))
	if err := copier.Copy(&resp, &items); err != nil {
		return nil, storeError("pet.ListItems", err)
	}
	return resp, nil
}

// Purchase deducts the item cost and records ownership in one transaction.
// The deduction is conditional on the balance, so points never go negative.
func (s *petService) Purchase(ctx context.Context, studentID string, itemID uint) (*dto.PurchaseResponse, error) {
	var remaining int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		petRepo := s.petRepo.WithTx(tx)
		studentRepo := s.studentRepo.WithTx(tx)

		item, err := petRepo.FindItemByID(ctx, itemID)
		if err != nil {
			return lookupError("pet.Purchase", "Item not found", err)
		}
		student, err := studentRepo.FindByID(ctx, studentID)
		if err != nil {
			return lookupError("pet.Purchase", "Student not found", err)
		}
		if student.TotalPoints < item.Cost {
			return apperror.Validation("pet.Purchase", "Not enough points")
		}
		if student.Level < item.UnlockLevel {
			return apperror.Validation("pet.Purchase", "Item not unlocked yet")
		}

		deducted, err := studentRepo.DeductPoints(ctx, studentID, item.Cost)
		if err != nil {
			return err
		}
		if !deducted {
			return apperror.Validation("pet.Purchase", "Not enough points")
		}
		if err := petRepo.AddOwnership(ctx, &model.StudentPetItem{StudentID: studentID, ItemID: item.ID}); err != nil {
			return err
		}

		updated, err := studentRepo.FindByID(ctx, studentID)
		if err != nil {
			return err
		}
		remaining = updated.TotalPoints
		return nil
	})
	if err != nil {
		return nil, passThrough("pet.Purchase", err)
	}

	log.Info().Str("studentID", studentID).Uint("itemID", itemID).Int("pointsRemaining", remaining).Msg("Pet item purchased")
	return &dto.PurchaseResponse{Success: true, PointsRemaining: remaining}, nil
}

func (s *petService) Inventory(ctx context.Context, studentID string) ([]dto.OwnedPetItemResponse, error) {
	owned, err := s.petRepo.FindOwnedItems(ctx, studentID)
	if err != nil {
		return nil, storeError("pet.Inventory", err)
	}
	resp := make([]dto.OwnedPetItemResponse, 0, len(owned))
	for _, o := range owned {
		entry := dto.OwnedPetItemResponse{ID: o.ID, PurchasedAt: o.PurchasedAt}
		if err := copier.Copy(&entry.Item, &o.Item); err != nil {
			return nil, storeError("pet.Inventory", err)
		}
		resp = append(resp, entry)
	}
	return resp, nil
}
