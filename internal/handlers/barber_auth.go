package handlers

import (
	"net/http"
	"strings"

	"nextcut/internal/apperr"
	"nextcut/internal/auth"
	"nextcut/internal/models"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
)

type BarberSignupRequest struct {
	Name     string   `json:"name" binding:"required" example:"Sam's Cuts"`
	Username string   `json:"username" binding:"required" example:"sam"`
	Password string   `json:"password" binding:"required,min=6" example:"secret123"`
	Lat      *float64 `json:"lat" binding:"required,gte=-90,lte=90" example:"52.52"`
	Long     *float64 `json:"long" binding:"required,gte=-180,lte=180" example:"13.405"`
}

type BarberSigninRequest struct {
	Username string `json:"username" binding:"required" example:"sam"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type BarberView struct {
	ID       uint    `json:"id" example:"3"`
	Name     string  `json:"name" example:"Sam's Cuts"`
	Username string  `json:"username" example:"sam"`
	Lat      float64 `json:"lat" example:"52.52"`
	Long     float64 `json:"long" example:"13.405"`
}

type BarberAuthResponse struct {
	Barber BarberView `json:"barber"`
	Token  string     `json:"token"`
}

func newBarberView(b *models.Barber) BarberView {
	return BarberView{ID: b.ID, Name: b.Name, Username: b.Username, Lat: b.Lat, Long: b.Long}
}

// BarberSignup godoc
// @Summary		Register a barber
// @Tags			barber
// @Accept			json
// @Produce		json
// @Param			barber	body		BarberSignupRequest		true	"Barber"
// @Success		201		{object}	BarberAuthResponse
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		409		{object}	response.ErrorResponse	"USERNAME_EXISTS"
// @Router			/barber/signup [post]
func (h *Handler) BarberSignup(c *gin.Context) {
	var req BarberSignupRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.Fail(c, apperr.Wrap(apperr.Internal, "PASSWORD_HASH_ERROR", "could not hash password", err))
		return
	}
	barber := &models.Barber{
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Lat:          *req.Lat,
		Long:         *req.Long,
	}
	if err := h.barbers.CreateBarber(c.Request.Context(), barber); err != nil {
		response.Fail(c, err)
		return
	}

	token, ok := h.issue(c, barber.ID, auth.RoleBarber)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, BarberAuthResponse{Barber: newBarberView(barber), Token: token})
}

// BarberSignin godoc
// @Summary		Barber sign in
// @Tags			barber
// @Accept			json
// @Produce		json
// @Param			credentials	body		BarberSigninRequest		true	"Username and password"
// @Success		200			{object}	BarberAuthResponse
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401			{object}	response.ErrorResponse	"INVALID_CREDENTIALS"
// @Router			/barber/signin [post]
func (h *Handler) BarberSignin(c *gin.Context) {
	var req BarberSigninRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.GetBarberByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if barber == nil || !auth.CheckPassword(barber.PasswordHash, req.Password) {
		response.Fail(c, invalidCredentials())
		return
	}

	token, ok := h.issue(c, barber.ID, auth.RoleBarber)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, BarberAuthResponse{Barber: newBarberView(barber), Token: token})
}
