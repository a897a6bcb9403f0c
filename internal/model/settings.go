package model

import "strings"

// SettingsID is the identifier of the single settings document.
const SettingsID = "main"

// Merit is static promotional content shown instead of offers during an
// offer week.
type Merit struct {
	ID          string `json:"id" bson:"id" db:"id"`
	Title       string `json:"title" bson:"title" db:"title"`
	Description string `json:"description" bson:"description" db:"description"`
	ImageURL    string `json:"imageUrl" bson:"imageUrl" db:"image_url"`
}

// MeritInput is the admin form payload for a merit.
type MeritInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Apply validates the input and copies it onto m.
func (in MeritInput) Apply(m *Merit) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return MissingField("title")
	}
	m.Title = title
	m.Description = strings.TrimSpace(in.Description)
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		m.ImageURL = url
	}
	return nil
}

// OfferSettings is the global landing page configuration.
type OfferSettings struct {
	IsOfferWeek bool    `json:"isOfferWeek" bson:"isOfferWeek"`
	Merits      []Merit `json:"merits" bson:"merits"`
}

// DefaultOfferSettings is written when no settings exist yet.
func DefaultOfferSettings() *OfferSettings {
	return &OfferSettings{IsOfferWeek: false, Merits: []Merit{}}
}

// Landing modes.
const (
	LandingModeOffers = "offers"
	LandingModeMerits = "merits"
)

// LandingView is the content of the landing page hero section.
type LandingView struct {
	Mode   string      `json:"mode"`
	Offers []OfferView `json:"offers,omitempty"`
	Merits []Merit     `json:"merits,omitempty"`
}
