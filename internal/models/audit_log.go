package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id" firestore:"-"`

	ProviderID string `gorm:"size:64;index" json:"provider_id" firestore:"providerId"`
	ActorID    string `gorm:"size:64" json:"actor_id" firestore:"actorId"`
	Action     string `gorm:"size:50;not null" json:"action" firestore:"action"`

	Entity   string `gorm:"size:50" json:"entity" firestore:"entity"`
	EntityID string `gorm:"size:64" json:"entity_id" firestore:"entityId"`
	Metadata string `gorm:"type:text" json:"metadata" firestore:"metadata"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
