package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// WorkingHoursHandler lets a staff member read and replace their own hours.
type WorkingHoursHandler struct {
	users *directory.Users
}

func NewWorkingHoursHandler(users *directory.Users) *WorkingHoursHandler {
	return &WorkingHoursHandler{users: users}
}

type DayWindowRequest struct {
	Start string `json:"start" binding:"required,hhmm"`
	End   string `json:"end" binding:"required,hhmm"`
}

type WorkingHoursRequest struct {
	Weekday  DayWindowRequest `json:"weekday" binding:"required"`
	Saturday DayWindowRequest `json:"saturday" binding:"required"`
}

func (r WorkingHoursRequest) model() models.WorkingHours {
	return models.WorkingHours{
		Weekday:  models.DayWindow{Start: r.Weekday.Start, End: r.Weekday.End},
		Saturday: models.DayWindow{Start: r.Saturday.Start, End: r.Saturday.End},
	}
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), user.RoleStaff, p.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u.WorkingHours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req WorkingHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	hours := req.model()
	u, err := h.users.Update(c.Request.Context(), user.RoleStaff, p.UserID, directory.UserInput{
		WorkingHours: &hours,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u.WorkingHours)
}
