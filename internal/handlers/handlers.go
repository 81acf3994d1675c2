// Package handlers exposes the user and barber HTTP API.
package handlers

import (
	"nextcut/internal/apperr"
	"nextcut/internal/auth"
	"nextcut/internal/queue"
	"nextcut/internal/response"
	"nextcut/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	users   storage.UsersRepository
	barbers storage.BarbersRepository
	queue   *queue.Service
	tokens  *auth.TokenIssuer
}

func New(users storage.UsersRepository, barbers storage.BarbersRepository, q *queue.Service, tokens *auth.TokenIssuer) *Handler {
	return &Handler{users: users, barbers: barbers, queue: q, tokens: tokens}
}

// Routes mounts the API on r. Queue endpoints require a bearer token of the
// matching role.
func (h *Handler) Routes(r gin.IRouter) {
	user := r.Group("/user")
	{
		user.POST("/signup", h.UserSignup)
		user.POST("/signin", h.UserSignin)
	}
	userAuthed := user.Group("", auth.AuthMiddleware(h.tokens), auth.RequireRole(auth.RoleUser))
	{
		userAuthed.POST("/joinqueue", h.JoinQueue)
		userAuthed.POST("/leavequeue", h.LeaveQueue)
		userAuthed.GET("/nearby", h.Nearby)
		userAuthed.GET("/queue-status", h.QueueStatus)
	}

	barber := r.Group("/barber")
	{
		barber.POST("/signup", h.BarberSignup)
		barber.POST("/signin", h.BarberSignin)
	}
	barberAuthed := barber.Group("", auth.AuthMiddleware(h.tokens), auth.RequireRole(auth.RoleBarber))
	{
		barberAuthed.GET("/queue", h.BarberQueue)
		barberAuthed.POST("/remove-user", h.RemoveUser)
	}
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Fail(c, apperr.Wrap(apperr.Validation, "VALIDATION_ERROR", "invalid request body", err))
		return false
	}
	return true
}

func invalidCredentials() error {
	return apperr.Unauthorized("INVALID_CREDENTIALS", "invalid credentials")
}

func (h *Handler) issue(c *gin.Context, id uint, role string) (string, bool) {
	token, err := h.tokens.Issue(id, role)
	if err != nil {
		response.Fail(c, apperr.Wrap(apperr.Internal, "TOKEN_GENERATION_ERROR", "could not issue token", err))
		return "", false
	}
	return token, true
}
