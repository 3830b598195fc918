package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	TypeReviewRequest = "review_request"
	TypeBooked        = "appointment_booked"
	TypeStatusChanged = "appointment_status"
)

// Message is a user-facing notification before it reaches any channel.
type Message struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Body      string
	Data      map[string]string
	CreatedAt time.Time
}

func newMessage(userID, typ, title, body string, data map[string]string) Message {
	return Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

func appointmentData(ap *models.Appointment) map[string]string {
	return map[string]string{
		"appointmentId": ap.ID,
		"barberId":      ap.ProviderID,
		"employeeId":    ap.EmployeeID,
		"date":          ap.Date,
		"time":          ap.Time,
	}
}

// ReviewRequest asks the customer of a completed appointment for a review.
func ReviewRequest(ap *models.Appointment) Message {
	return newMessage(
		ap.CustomerID,
		TypeReviewRequest,
		"How was your visit?",
		fmt.Sprintf("Your %s on %s at %s is complete. Leave a review for your barber.", ap.ServiceName, ap.Date, ap.Time),
		appointmentData(ap),
	)
}

// Booked tells the assigned employee about a new pending request.
func Booked(ap *models.Appointment) Message {
	return newMessage(
		ap.EmployeeID,
		TypeBooked,
		"New appointment request",
		fmt.Sprintf("%s on %s at %s is waiting for your confirmation.", ap.ServiceName, ap.Date, ap.Time),
		appointmentData(ap),
	)
}

// StatusChanged tells the customer their appointment moved to a new status.
func StatusChanged(ap *models.Appointment) Message {
	data := appointmentData(ap)
	data["status"] = ap.Status

	return newMessage(
		ap.CustomerID,
		TypeStatusChanged,
		"Appointment update",
		fmt.Sprintf("Your appointment on %s at %s is now %s.", ap.Date, ap.Time, ap.Status),
		data,
	)
}
