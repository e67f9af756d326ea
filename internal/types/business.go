package types

import (
	"time"

	"github.com/google/uuid"
)

// RecommendedBusiness is a sponsor business offered to the generative service.
type RecommendedBusiness struct {
	ID                  uuid.UUID `json:"id"`
	ClientID            uuid.UUID `json:"client_id"`
	Name                string    `json:"business_name"`
	Type                string    `json:"business_type"`
	Country             string    `json:"business_country"`
	MatchInterestPoints []string  `json:"business_match_interest_points"`
	Description         *string   `json:"business_description,omitempty"`
}

// Business is the full stored business record.
type Business struct {
	RecommendedBusiness
	Phone             string    `json:"business_phone"`
	Email             string    `json:"business_email"`
	OpeningHours      string    `json:"business_opening_hours"`
	City              *string   `json:"business_city,omitempty"`
	Area              *string   `json:"business_area,omitempty"`
	AppearanceCounter int       `json:"appearance_counter"`
	CreatedAt         time.Time `json:"created_at"`
}

// BusinessClient holds the credit ledger of the paying client.
type BusinessClient struct {
	ID                 uuid.UUID `json:"id"`
	ContactPerson      string    `json:"business_contact_person"`
	ContactPersonPhone string    `json:"business_contact_person_phone"`
	CreditsBought      int       `json:"credits_bought"`
	CreditsSpent       int       `json:"credits_spent"`
	CreatedAt          time.Time `json:"created_at"`
}

// RemainingCredits is what the client can still be charged.
func (c BusinessClient) RemainingCredits() int {
	return c.CreditsBought - c.CreditsSpent
}

// BusinessFilter narrows the sponsor lookup for a trip.
type BusinessFilter struct {
	Country           string
	InterestPoints    []string
	City              string
	Area              string
	AccommodationType string
}

// NewBusinessRequest is the onboarding payload.
type NewBusinessRequest struct {
	Name                string   `json:"business_name"`
	Type                string   `json:"business_type"`
	Phone               string   `json:"business_phone"`
	Email               string   `json:"business_email"`
	Country             string   `json:"business_country"`
	OpeningHours        string   `json:"business_opening_hours"`
	ContactPerson       string   `json:"business_contact_person"`
	ContactPersonPhone  string   `json:"business_contact_person_phone"`
	CreditsBought       int      `json:"credits_bought"`
	MatchInterestPoints []string `json:"business_match_interest_points"`
	Description         *string  `json:"business_description,omitempty"`
	City                *string  `json:"business_city,omitempty"`
	Area                *string  `json:"business_area,omitempty"`
}

// BusinessWithClient is returned by the business read endpoint.
type BusinessWithClient struct {
	Business Business       `json:"business"`
	Client   BusinessClient `json:"client"`
}
