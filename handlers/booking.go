package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotify/models"
	"slotify/utils"
)

// CreateBookingHandler persists a booking. One service books a single
// appointment; two or more book one consecutive multi-segment
// appointment. Both paths re-check conflicts atomically at write time.
func CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	var (
		appt *models.Appointment
		err  error
	)
	if len(req.Services) > 1 {
		appt, err = SchedulingService.CreateConsecutiveBooking(ctx, req)
	} else {
		appt, err = SchedulingService.CreateBooking(ctx, req)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateAvailability(ctx, appt.ProviderID, appt.Date)
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// UpdateAppointmentStatusHandler applies one status-machine transition.
func UpdateAppointmentStatusHandler(c *gin.Context) {
	appointmentID := c.Param("appointmentID")
	var input struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	appt, err := SchedulingService.UpdateAppointmentStatus(ctx, appointmentID, input.Status, input.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateAvailability(ctx, appt.ProviderID, appt.Date)
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// GetAppointmentHandler fetches a single appointment by ID.
func GetAppointmentHandler(c *gin.Context) {
	appt, err := SchedulingService.GetAppointment(c.Request.Context(), c.Param("appointmentID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ListAppointmentsHandler lists a provider's appointments for one date.
func ListAppointmentsHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	date := c.Query("date")

	appts, err := SchedulingService.ListAppointments(c.Request.Context(), providerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"providerID": providerID, "date": date, "appointments": appts})
}
