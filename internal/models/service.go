package models

import "time"

type Service struct {
	ID         uint   `gorm:"primaryKey" json:"-" firestore:"-"`
	ProviderID string `gorm:"size:64;not null;uniqueIndex:ux_services_provider_name" json:"-" firestore:"-"`

	Name            string  `gorm:"size:100;not null;uniqueIndex:ux_services_provider_name" json:"name" firestore:"name"`
	Price           float64 `json:"price" firestore:"price"`
	DurationMinutes int     `json:"duration" firestore:"duration"`

	CreatedAt time.Time `json:"-" firestore:"-"`
	UpdatedAt time.Time `json:"-" firestore:"-"`
}
