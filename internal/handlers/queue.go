package handlers

import (
	"net/http"
	"strconv"

	"nextcut/internal/apperr"
	"nextcut/internal/auth"
	"nextcut/internal/models"
	"nextcut/internal/queue"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
)

// DefaultRadiusKm is used when a nearby search gives no radius.
const DefaultRadiusKm = 5.0

type JoinQueueRequest struct {
	BarberID uint               `json:"barberId" binding:"required" example:"3"`
	Service  models.ServiceType `json:"service" example:"haircut"`
}

type JoinQueueResponse struct {
	Queue         queue.Entry `json:"queue"`
	Position      int         `json:"position" example:"2"`
	AlreadyQueued bool        `json:"alreadyQueued"`
}

type LeaveQueueResponse struct {
	Data *queue.LeaveOutcome `json:"data"`
}

type Location struct {
	Lat  float64 `json:"lat" example:"52.52"`
	Long float64 `json:"long" example:"13.405"`
}

type NearbyResponse struct {
	Barbers        []queue.NearbyBarber `json:"barbers"`
	SearchLocation Location             `json:"searchLocation"`
	RadiusKm       float64              `json:"radiusKm" example:"5"`
}

type QueueStatusResponse struct {
	QueueStatus *queue.Status `json:"queueStatus"`
}

// JoinQueue godoc
// @Summary		Join a barber's queue
// @Description	Leaves any other queue first. Joining the same barber again keeps the current place.
// @Tags			user
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			request	body		JoinQueueRequest		true	"Barber and service"
// @Success		201		{object}	JoinQueueResponse		"Joined"
// @Success		200		{object}	JoinQueueResponse		"Already in this queue"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401		{object}	response.ErrorResponse
// @Failure		404		{object}	response.ErrorResponse	"BARBER_NOT_FOUND"
// @Router			/user/joinqueue [post]
func (h *Handler) JoinQueue(c *gin.Context) {
	var req JoinQueueRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.queue.Join(c.Request.Context(), auth.CurrentPrincipal(c).SubjectID, req.BarberID, req.Service)
	if err != nil {
		response.Fail(c, err)
		return
	}

	status := http.StatusCreated
	if out.AlreadyQueued {
		status = http.StatusOK
	}
	c.JSON(status, JoinQueueResponse{Queue: out.Entry, Position: out.Position, AlreadyQueued: out.AlreadyQueued})
}

// LeaveQueue godoc
// @Summary		Leave the current queue
// @Tags			user
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	LeaveQueueResponse
// @Failure		400	{object}	response.ErrorResponse	"NOT_IN_QUEUE"
// @Failure		401	{object}	response.ErrorResponse
// @Router			/user/leavequeue [post]
func (h *Handler) LeaveQueue(c *gin.Context) {
	out, err := h.queue.Leave(c.Request.Context(), auth.CurrentPrincipal(c).SubjectID)
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

// Nearby godoc
// @Summary		Barbers near a location
// @Description	Barbers within radius km, nearest first, with their queue length and estimated wait in minutes
// @Tags			user
// @Produce		json
// @Security		BearerAuth
// @Param			lat		query		number	true	"Latitude"
// @Param			long	query		number	true	"Longitude"
// @Param			radius	query		number	false	"Radius in km"	default(5)
// @Success		200		{object}	NearbyResponse
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401		{object}	response.ErrorResponse
// @Router			/user/nearby [get]
func (h *Handler) Nearby(c *gin.Context) {
	lat, ok := floatQuery(c, "lat")
	if !ok {
		return
	}
	long, ok := floatQuery(c, "long")
	if !ok {
		return
	}
	radius := DefaultRadiusKm
	if _, given := c.GetQuery("radius"); given {
		if radius, ok = floatQuery(c, "radius"); !ok {
			return
		}
	}

	barbers, err := h.queue.FindNearby(c.Request.Context(), lat, long, radius)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NearbyResponse{
		Barbers:        barbers,
		SearchLocation: Location{Lat: lat, Long: long},
		RadiusKm:       radius,
	})
}

func floatQuery(c *gin.Context, name string) (float64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", name+" is required"))
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", name+" must be a number"))
		return 0, false
	}
	return v, true
}

// QueueStatus godoc
// @Summary		Current queue position
// @Tags			user
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	QueueStatusResponse
// @Failure		401	{object}	response.ErrorResponse
// @Router			/user/queue-status [get]
func (h *Handler) QueueStatus(c *gin.Context) {
	st, err := h.queue.Status(c.Request.Context(), auth.CurrentPrincipal(c).SubjectID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, QueueStatusResponse{QueueStatus: st})
}
