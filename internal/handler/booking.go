package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentfleet/internal/domain"
	"rentfleet/internal/middleware"
	"rentfleet/internal/service"
)

const dateLayout = "2006-01-02"

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
// Dates accept RFC 3339 timestamps or plain YYYY-MM-DD dates. CustomerID is
// only honored for admin callers; customers always book for themselves.
type CreateBookingRequest struct {
	CustomerID    string `json:"customer_id,omitempty"`
	VehicleID     string `json:"vehicle_id"`
	RentStartDate string `json:"rent_start_date"`
	RentEndDate   string `json:"rent_end_date"`
}

// UpdateBookingStatusRequest is the HTTP request body for a status transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customer_id"`
	VehicleID     string  `json:"vehicle_id"`
	RentStartDate string  `json:"rent_start_date"`
	RentEndDate   string  `json:"rent_end_date"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
}

// BookingDetailResponse is a booking enriched with customer and vehicle data.
type BookingDetailResponse struct {
	BookingResponse

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`

	VehicleName        string `json:"vehicle_name"`
	RegistrationNumber string `json:"registration_number"`
	VehicleCategory    string `json:"category,omitempty"`
}

func bookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		RentStartDate: b.RentStartDate.UTC().Format(dateLayout),
		RentEndDate:   b.RentEndDate.UTC().Format(dateLayout),
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
	}
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing identity"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	start, err := parseDate(req.RentStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid rent_start_date"})
		return
	}

	end, err := parseDate(req.RentEndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid rent_end_date"})
		return
	}

	customerID := identity.UserID
	if identity.Role == domain.RoleAdmin && req.CustomerID != "" {
		customerID = req.CustomerID
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		CustomerID:    customerID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, bookingResponse(booking))
}

// GetAll handles GET /v1/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing identity"})
		return
	}

	details, err := h.bookingService.ListBookings(c.Request.Context(), identity.UserID, identity.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingDetailResponse, 0, len(details))
	for _, d := range details {
		row := BookingDetailResponse{
			BookingResponse:    bookingResponse(&d.Booking),
			VehicleName:        d.VehicleName,
			RegistrationNumber: d.RegistrationNumber,
		}
		switch identity.Role {
		case domain.RoleAdmin:
			row.CustomerName = d.CustomerName
			row.CustomerEmail = d.CustomerEmail
		case domain.RoleCustomer:
			row.VehicleCategory = string(d.VehicleCategory)
		}
		response = append(response, row)
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateStatus handles PATCH /v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing identity"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), service.UpdateBookingStatusRequest{
		BookingID:   c.Param("id"),
		RequesterID: identity.UserID,
		Role:        identity.Role,
		Status:      domain.BookingStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
