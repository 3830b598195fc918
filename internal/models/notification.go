package models

import "time"

type Notification struct {
	ID     string `gorm:"primaryKey;size:64" json:"id" firestore:"-"`
	UserID string `gorm:"size:64;index;not null" json:"user_id" firestore:"userId"`

	Title   string `gorm:"size:150;not null" json:"title" firestore:"title"`
	Message string `gorm:"size:500" json:"message" firestore:"message"`
	Type    string `gorm:"size:50" json:"type" firestore:"type"`
	Data    string `gorm:"type:text" json:"data" firestore:"data"`

	ReadAt    *time.Time `json:"read_at" firestore:"readAt"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
}
