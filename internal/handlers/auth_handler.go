package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	authuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
)

type AuthHandler struct {
	register *authuc.Register
	login    *authuc.Login
	me       *authuc.Me
}

func NewAuthHandler(register *authuc.Register, login *authuc.Login, me *authuc.Me) *AuthHandler {
	return &AuthHandler{register: register, login: login, me: me}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), authuc.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	u, err := h.me.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}
