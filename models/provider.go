package models

import "time"

// Service is one bookable offering in a provider's catalogue.
type Service struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Duration int    `bson:"duration" json:"duration"` // minutes
}

// Provider is the read model the scheduling core consumes. WorkingHours
// is owned and mutated by the provider-settings collaborator; the core
// treats it as read-only input.
type Provider struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Services     []Service    `bson:"services" json:"services"`
	WorkingHours WorkingHours `bson:"working_hours" json:"workingHours"`
	Timezone     string       `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updatedAt"`
}

// ServiceByID looks up a catalogue entry.
func (p Provider) ServiceByID(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Location resolves the provider's timezone, falling back to server local.
func (p Provider) Location() *time.Location {
	if p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	return time.Local
}
