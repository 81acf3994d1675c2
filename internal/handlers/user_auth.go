package handlers

import (
	"net/http"
	"strings"

	"nextcut/internal/apperr"
	"nextcut/internal/auth"
	"nextcut/internal/models"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserSignupRequest struct {
	Name        string `json:"name" binding:"required" example:"Alex"`
	Email       string `json:"email" example:"alex@example.com"`
	PhoneNumber string `json:"phoneNumber" example:"+15550100"`
	Password    string `json:"password" example:"secret123"`
}

type UserSigninRequest struct {
	Email       string `json:"email" example:"alex@example.com"`
	PhoneNumber string `json:"phoneNumber" example:"+15550100"`
	Password    string `json:"password" example:"secret123"`
}

type UserView struct {
	ID          uint    `json:"id" example:"7"`
	Name        string  `json:"name" example:"Alex"`
	Email       *string `json:"email,omitempty" example:"alex@example.com"`
	PhoneNumber *string `json:"phoneNumber,omitempty" example:"+15550100"`
}

type UserAuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

func newUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail checks an already normalized address.
func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// UserSignup godoc
// @Summary		Register a customer
// @Description	Registers with an email and password, or with a phone number and an optional password
// @Tags			user
// @Accept			json
// @Produce		json
// @Param			user	body		UserSignupRequest		true	"Customer"
// @Success		201		{object}	UserAuthResponse
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		409		{object}	response.ErrorResponse	"USER_EXISTS"
// @Router			/user/signup [post]
func (h *Handler) UserSignup(c *gin.Context) {
	var req UserSignupRequest
	if !bindJSON(c, &req) {
		return
	}

	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)
	switch {
	case email == "" && phone == "":
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", "email or phoneNumber is required"))
		return
	case email != "" && !validEmail(email):
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", "email is not a valid address"))
		return
	case email != "" && len(req.Password) < 6:
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", "password of at least 6 characters is required with email"))
		return
	}

	user := &models.User{Name: strings.TrimSpace(req.Name)}
	if email != "" {
		user.Email = &email
	}
	if phone != "" {
		user.PhoneNumber = &phone
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			response.Fail(c, apperr.Wrap(apperr.Internal, "PASSWORD_HASH_ERROR", "could not hash password", err))
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		response.Fail(c, err)
		return
	}

	token, ok := h.issue(c, user.ID, auth.RoleUser)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, UserAuthResponse{User: newUserView(user), Token: token})
}

// UserSignin godoc
// @Summary		Customer sign in
// @Tags			user
// @Accept			json
// @Produce		json
// @Param			credentials	body		UserSigninRequest		true	"Email or phone number"
// @Success		200			{object}	UserAuthResponse
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401			{object}	response.ErrorResponse	"INVALID_CREDENTIALS"
// @Router			/user/signin [post]
func (h *Handler) UserSignin(c *gin.Context) {
	var req UserSigninRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var (
		user *models.User
		err  error
	)
	switch email, phone := normalizeEmail(req.Email), strings.TrimSpace(req.PhoneNumber); {
	case email != "":
		user, err = h.users.GetUserByEmail(ctx, email)
	case phone != "":
		user, err = h.users.GetUserByPhone(ctx, phone)
	default:
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", "email or phoneNumber is required"))
		return
	}
	if err != nil {
		response.Fail(c, err)
		return
	}
	if user == nil {
		response.Fail(c, invalidCredentials())
		return
	}
	// Phone-only accounts may have no password at all.
	if user.PasswordHash != "" || req.Password != "" {
		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			response.Fail(c, invalidCredentials())
			return
		}
	}

	token, ok := h.issue(c, user.ID, auth.RoleUser)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, UserAuthResponse{User: newUserView(user), Token: token})
}
