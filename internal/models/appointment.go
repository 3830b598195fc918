package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:64" json:"id" firestore:"-"`

	CustomerID string `gorm:"size:64;index;not null" json:"customer_id" firestore:"customerId"`
	ProviderID string `gorm:"size:64;index:ix_appointments_provider_date;not null" json:"provider_id" firestore:"barberId"`
	EmployeeID string `gorm:"size:64;index:ix_appointments_employee_date;not null" json:"employee_id" firestore:"employeeId"`

	ServiceName string `gorm:"size:100;not null" json:"service_name" firestore:"serviceName"`

	Date string `gorm:"size:10;index:ix_appointments_provider_date;index:ix_appointments_employee_date;not null" json:"date" firestore:"date"`
	Time string `gorm:"size:5;not null" json:"time" firestore:"time"`

	// Snapshot of the service at booking time.
	DurationMinutes int     `gorm:"not null" json:"duration_minutes" firestore:"duration"`
	Price           float64 `json:"price" firestore:"price"`

	Status string `gorm:"size:20;default:'pending';index" json:"status" firestore:"status"`
	Notes  string `gorm:"size:255" json:"notes" firestore:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" firestore:"confirmedAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
