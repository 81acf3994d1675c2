package handlers

import (
	"net/http"

	"nextcut/internal/apperr"
	"nextcut/internal/auth"
	"nextcut/internal/queue"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
)

type BarberQueueResponse struct {
	BarberID    uint                   `json:"barberId" example:"3"`
	QueueLength int                    `json:"queueLength" example:"2"`
	Queue       []queue.QueuedCustomer `json:"queue"`
}

type RemoveUserRequest struct {
	UserID uint `json:"userId" binding:"required" example:"7"`
}

// BarberQueue godoc
// @Summary		The signed-in barber's queue
// @Tags			barber
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	BarberQueueResponse
// @Failure		401	{object}	response.ErrorResponse
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN"
// @Router			/barber/queue [get]
func (h *Handler) BarberQueue(c *gin.Context) {
	barberID := auth.CurrentPrincipal(c).SubjectID
	list, err := h.queue.ListQueue(c.Request.Context(), barberID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BarberQueueResponse{BarberID: barberID, QueueLength: len(list), Queue: list})
}

// RemoveUser godoc
// @Summary		Remove a customer from the queue
// @Tags			barber
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			request	body		RemoveUserRequest		true	"Customer"
// @Success		200		{object}	LeaveQueueResponse
// @Failure		400		{object}	response.ErrorResponse	"NOT_IN_QUEUE"
// @Failure		401		{object}	response.ErrorResponse
// @Failure		403		{object}	response.ErrorResponse	"FORBIDDEN"
// @Router			/barber/remove-user [post]
func (h *Handler) RemoveUser(c *gin.Context) {
	var req RemoveUserRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.queue.RemoveUser(c.Request.Context(), auth.CurrentPrincipal(c).SubjectID, req.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if !out.Success {
		response.Fail(c, apperr.Invalid("NOT_IN_QUEUE", out.Reason))
		return
	}
	c.JSON(http.StatusOK, LeaveQueueResponse{Data: out})
}
