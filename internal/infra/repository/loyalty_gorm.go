package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type LoyaltyGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyGormRepository(db *gorm.DB) *LoyaltyGormRepository {
	return &LoyaltyGormRepository{db: db}
}

func balance(db *gorm.DB, userID uuid.UUID) (int, error) {
	var sum int
	err := db.Model(&models.PointsTransaction{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	return sum, errors.Wrap(err, "sum points")
}

func (r *LoyaltyGormRepository) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	return balance(r.db.WithContext(ctx), userID)
}

func (r *LoyaltyGormRepository) History(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.PointsTransaction, error) {

	var out []models.PointsTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list points history")
	}
	return out, nil
}

func (r *LoyaltyGormRepository) Award(
	ctx context.Context,
	tx *models.PointsTransaction,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}},
			DoNothing: true,
		}).
		Create(tx)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "award points")
	}
	return res.RowsAffected > 0, nil
}

func (r *LoyaltyGormRepository) Redeem(
	ctx context.Context,
	userID uuid.UUID,
	reward loyalty.Reward,
) (int, error) {

	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serialises concurrent redemptions of the same customer
		var owner models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, "id = ?", userID).Error; err != nil {
			return notFoundAs(err, user.ErrNotFound, "lock user")
		}

		current, err := balance(tx, userID)
		if err != nil {
			return err
		}
		if current < reward.PointsCost {
			return loyalty.ErrInsufficientPoints
		}

		rewardID := reward.ID
		debit := models.PointsTransaction{
			UserID:      userID,
			Kind:        models.PointsRedeem,
			Points:      -reward.PointsCost,
			RewardID:    &rewardID,
			Description: reward.Name,
		}
		if err := tx.Create(&debit).Error; err != nil {
			return errors.Wrap(err, "write redemption")
		}

		remaining = current - reward.PointsCost
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

var _ loyalty.Repository = (*LoyaltyGormRepository)(nil)
