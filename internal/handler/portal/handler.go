package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/handler"
	"github.com/vetcarepro/clinic-api/internal/middleware"
	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/service"
)

// Handler serves the client-portal surface. Every query is scoped to the
// client id carried by the portal token; clients never address other clients'
// data by id.
type Handler struct {
	appointments *service.AppointmentService
	pets         *service.PetService
	billing      *service.BillingService
}

func NewHandler(appointments *service.AppointmentService, pets *service.PetService, billing *service.BillingService) *Handler {
	return &Handler{
		appointments: appointments,
		pets:         pets,
		billing:      billing,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	portal := r.Group("/portal")
	{
		portal.GET("/availability", h.Availability)
		portal.GET("/pets", h.ListPets)
		portal.GET("/appointments", h.ListAppointments)
		portal.POST("/appointments", h.Book)
		portal.GET("/invoices", h.ListInvoices)
	}
}

// bookRequest is the portal booking payload. The client id comes from the
// token and the price always snapshots the catalog.
type bookRequest struct {
	PetID     uuid.UUID  `json:"pet_id" binding:"required"`
	VetID     *uuid.UUID `json:"vet_id"`
	ServiceID uuid.UUID  `json:"service_id" binding:"required"`
	Date      string     `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string     `json:"time" binding:"required,datetime=15:04"`
	Reason    string     `json:"reason"`
	Notes     string     `json:"notes"`
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token subject"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service_id"))
		return
	}
	var vetID *uuid.UUID
	if raw := c.Query("vet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vet_id"))
			return
		}
		vetID = &id
	}

	avail, err := h.appointments.Availability(c.Request.Context(), date, serviceID, vetID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(avail))
}

func (h *Handler) ListPets(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}
	pets, err := h.pets.List(c.Request.Context(), &clientID, false)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(pets))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}
	filters := &model.AppointmentFilters{
		ClientID: &clientID,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	apts, err := h.appointments.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(apts))
}

func (h *Handler) Book(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	apt, err := h.appointments.Book(c.Request.Context(), &model.CreateAppointmentRequest{
		ClientID:  clientID,
		PetID:     req.PetID,
		VetID:     req.VetID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessMessageResponse("appointment booked", apt))
}

func (h *Handler) ListInvoices(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}
	invs, err := h.billing.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(invs))
}
