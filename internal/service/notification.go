package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentfleet/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationBookingReturned  NotificationType = "BOOKING_RETURNED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Email client (SendGrid)
	// - SMS client (Twilio)
	// - Push notification client
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingCreated notifies the customer that their booking is confirmed.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, vehicle *domain.Vehicle) error {
	notification := Notification{
		Type:        NotificationBookingCreated,
		RecipientID: booking.CustomerID,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Your booking for %s is confirmed. Total price: $%.2f", vehicle.Name, booking.TotalPrice),
		Data: map[string]interface{}{
			"booking_id":  booking.ID,
			"vehicle_id":  vehicle.ID,
			"total_price": booking.TotalPrice,
			"start_date":  booking.RentStartDate,
			"end_date":    booking.RentEndDate,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingStatusChanged notifies the customer that their booking was
// cancelled or returned.
func (s *NotificationService) NotifyBookingStatusChanged(ctx context.Context, booking *domain.Booking) error {
	var notificationType NotificationType
	var title, message string

	switch booking.Status {
	case domain.BookingStatusCancelled:
		notificationType = NotificationBookingCancelled
		title = "Booking Cancelled"
		message = "Your booking has been cancelled. The vehicle is available again."
	case domain.BookingStatusReturned:
		notificationType = NotificationBookingReturned
		title = "Vehicle Returned"
		message = "Your booking has been closed. Thank you for renting with us."
	default:
		return nil
	}

	notification := Notification{
		Type:        notificationType,
		RecipientID: booking.CustomerID,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"status":     booking.Status,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification. The current implementation logs it; the
// delivery channels are stubbed until a provider is picked.
func (s *NotificationService) send(ctx context.Context, n Notification) error {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
	return nil
}
