package loyalty

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Reward struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
}

var Rewards = []Reward{
	{ID: 1, Name: "10% Off Any Service", Description: "Get 10% off your next service", PointsCost: 100},
	{ID: 2, Name: "Free Manicure", Description: "Redeem for a free basic manicure", PointsCost: 200},
	{ID: 3, Name: "20% Off Full Set", Description: "Get 20% off your next full set", PointsCost: 300},
	{ID: 4, Name: "Free Pedicure", Description: "Redeem for a free basic pedicure", PointsCost: 400},
}

var (
	ErrRewardNotFound     = httperr.ErrNotFound("reward_not_found", "Reward not found")
	ErrInsufficientPoints = httperr.ErrValidation("insufficient_points", "Not enough points to redeem this reward")
)

func FindReward(id int) (Reward, error) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return Reward{}, ErrRewardNotFound
}

// PointsFor is the number of points earned for a completed appointment:
// one per whole currency unit of the service price.
func PointsFor(price float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Floor(price))
}

type Repository interface {
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.PointsTransaction, error)

	// Award inserts an earn entry unless one already exists for the
	// appointment. It reports whether a row was written.
	Award(ctx context.Context, tx *models.PointsTransaction) (bool, error)

	// Redeem locks the user's ledger, checks the balance covers cost and
	// writes the debit. Returns the new balance.
	Redeem(ctx context.Context, userID uuid.UUID, reward Reward) (int, error)
}
