package models

import "time"

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleEmployee = "employee"
)

type User struct {
	ID    string `gorm:"primaryKey;size:64" json:"id" firestore:"-"`
	Name  string `gorm:"size:100;not null" json:"name" firestore:"name"`
	Email string `gorm:"size:100;uniqueIndex" json:"email" firestore:"email"`
	Phone string `gorm:"size:20" json:"phone" firestore:"phone"`
	Role  string `gorm:"size:20;default:'customer'" json:"role" firestore:"role"`

	// PushToken is the FCM registration token of the user's latest device.
	PushToken string `gorm:"size:255" json:"-" firestore:"pushToken"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
