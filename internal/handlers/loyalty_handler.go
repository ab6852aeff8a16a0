package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
)

// LoyaltyHandler is the customer's points screen.
type LoyaltyHandler struct {
	points *loyalty.GetPoints
	redeem *loyalty.RedeemReward
}

func NewLoyaltyHandler(points *loyalty.GetPoints, redeem *loyalty.RedeemReward) *LoyaltyHandler {
	return &LoyaltyHandler{points: points, redeem: redeem}
}

func (h *LoyaltyHandler) Points(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	summary, err := h.points.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"points": summary.Balance})
}

func (h *LoyaltyHandler) History(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	summary, err := h.points.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, summary.History)
}

func (h *LoyaltyHandler) Rewards(c *gin.Context) {
	httpresp.OK(c, loyalty.ListRewards())
}

func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	rewardID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.Respond(c, domain.ErrRewardNotFound)
		return
	}

	res, err := h.redeem.Execute(c.Request.Context(), p.UserID, rewardID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}
