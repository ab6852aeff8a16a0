package loyalty

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Counter interface {
	Inc()
}

type ServiceLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

// ======================================================
// Awarding
// ======================================================

type AwardPoints struct {
	repo     domain.Repository
	services ServiceLookup
	log      *slog.Logger
}

func NewAwardPoints(repo domain.Repository, services ServiceLookup, log *slog.Logger) *AwardPoints {
	return &AwardPoints{repo: repo, services: services, log: log}
}

// AwardForAppointment credits the customer once per appointment. A service
// that no longer exists earns nothing.
func (uc *AwardPoints) AwardForAppointment(ctx context.Context, ap *models.Appointment) error {
	svc := ap.Service
	if svc == nil || svc.ID != ap.ServiceID {
		var err error
		svc, err = uc.services.FindByID(ctx, ap.ServiceID)
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil
		}
		if err != nil {
			return err
		}
	}

	points := domain.PointsFor(svc.Price)
	if points == 0 {
		return nil
	}

	apID := ap.ID
	written, err := uc.repo.Award(ctx, &models.PointsTransaction{
		UserID:        ap.CustomerID,
		Kind:          models.PointsEarn,
		Points:        points,
		AppointmentID: &apID,
		Description:   "Completed " + svc.Name,
	})
	if err != nil {
		return err
	}

	if written {
		uc.log.InfoContext(ctx, "points awarded",
			slog.String("user_id", ap.CustomerID.String()),
			slog.String("appointment_id", ap.ID.String()),
			slog.Int("points", points),
		)
	}
	return nil
}

// ======================================================
// Reading
// ======================================================

type Summary struct {
	Balance int                        `json:"points"`
	History []models.PointsTransaction `json:"history"`
}

type GetPoints struct {
	repo domain.Repository
}

func NewGetPoints(repo domain.Repository) *GetPoints {
	return &GetPoints{repo: repo}
}

func (uc *GetPoints) Execute(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	bal, err := uc.repo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := uc.repo.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.PointsTransaction{}
	}
	return &Summary{Balance: bal, History: history}, nil
}

func ListRewards() []domain.Reward {
	out := make([]domain.Reward, len(domain.Rewards))
	copy(out, domain.Rewards)
	return out
}

// ======================================================
// Redeeming
// ======================================================

type Redemption struct {
	Reward    domain.Reward `json:"reward"`
	Remaining int           `json:"points"`
}

type RedeemReward struct {
	repo     domain.Repository
	audit    audit.Recorder
	redeemed Counter
}

func NewRedeemReward(repo domain.Repository, recorder audit.Recorder, redeemed Counter) *RedeemReward {
	return &RedeemReward{repo: repo, audit: recorder, redeemed: redeemed}
}

func (uc *RedeemReward) Execute(ctx context.Context, userID uuid.UUID, rewardID int) (*Redemption, error) {
	reward, err := domain.FindReward(rewardID)
	if err != nil {
		return nil, err
	}

	remaining, err := uc.repo.Redeem(ctx, userID, reward)
	if err != nil {
		return nil, err
	}

	uc.redeemed.Inc()

	uc.audit.Record(ctx, audit.Event{
		ActorID:  &userID,
		Action:   "reward_redeemed",
		Entity:   "reward",
		EntityID: strconv.Itoa(reward.ID),
		Metadata: map[string]any{"cost": reward.PointsCost, "remaining": remaining},
	})

	return &Redemption{Reward: reward, Remaining: remaining}, nil
}

// Compile-time check
var _ interface {
	AwardForAppointment(context.Context, *models.Appointment) error
} = (*AwardPoints)(nil)

var _ ServiceLookup = (catalog.Repository)(nil)
