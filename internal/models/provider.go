package models

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// Provider is a bookable person: a barbershop owner (barber) or one of the
// owner's staff (employee). A provider shares its ID with the user account
// behind it, and an owner's BarbershopID is its own ID.
type Provider struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	BarbershopID string `gorm:"size:64;index;not null" json:"barbershop_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Role     string `gorm:"size:20;default:'barber'" json:"role"`
	Timezone string `gorm:"size:64" json:"timezone"`

	WorkingHours schedule.Raw `gorm:"type:text" json:"working_hours"`

	Services []Service `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopID is the barbershop the provider works for. Owner records written
// before BarbershopID existed fall back to their own ID.
func (p *Provider) ShopID() string {
	if p.BarbershopID == "" {
		return p.ID
	}
	return p.BarbershopID
}

// BelongsTo reports whether p can be booked under barbershopID. An employee
// only belongs to the owner's shop, never to its own ID.
func (p *Provider) BelongsTo(barbershopID string) bool {
	return p.ShopID() == barbershopID
}

// FindService looks a service up by its name, which is unique per provider.
func (p *Provider) FindService(name string) (*Service, bool) {
	for i := range p.Services {
		if p.Services[i].Name == name {
			return &p.Services[i], true
		}
	}
	return nil, false
}
