package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// MeHandler lets any signed-in user edit their own profile.
type MeHandler struct {
	users *directory.Users
}

func NewMeHandler(users *directory.Users) *MeHandler {
	return &MeHandler{users: users}
}

// Email, role and status are managed by admins only.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
}

func (h *MeHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), p.Role, p.UserID, directory.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}
