// Package model defines domain entities for the application.
package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DefaultImageURL is shown for every creator that has no image of its own.
const DefaultImageURL = "https://placehold.co/400x400/f5e6d3/5d4e37?text=CreatorVerse"

// Creator is a content creator record. Name is the natural key.
type Creator struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageURL"`
}

// Image returns the creator's image, or DefaultImageURL when absent.
func (c Creator) Image() string {
	if c.ImageURL == nil || *c.ImageURL == "" {
		return DefaultImageURL
	}
	return *c.ImageURL
}

var httpScheme = regexp.MustCompile(`^(?i)https?://`)

// CreatorInput holds raw form values for creating or editing a creator.
type CreatorInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
}

// Validate checks the required fields and URL formats.
func (in CreatorInput) Validate() error {
	in = in.trimmed()
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.URL,
			validation.Required,
			is.URL,
			validation.Match(httpScheme).Error("must start with http:// or https://"),
		),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.ImageURL,
			is.URL,
			validation.Match(httpScheme).Error("must start with http:// or https://"),
		),
	)
}

// ToCreator converts the form values to a record.
// An empty image field becomes an absent image, never an empty string.
func (in CreatorInput) ToCreator() Creator {
	in = in.trimmed()
	c := Creator{
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
	}
	if in.ImageURL != "" {
		img := in.ImageURL
		c.ImageURL = &img
	}
	return c
}

// InputFromCreator seeds form values from a record.
func InputFromCreator(c Creator) CreatorInput {
	in := CreatorInput{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
	}
	if c.ImageURL != nil {
		in.ImageURL = *c.ImageURL
	}
	return in
}

func (in CreatorInput) trimmed() CreatorInput {
	return CreatorInput{
		Name:        strings.TrimSpace(in.Name),
		URL:         strings.TrimSpace(in.URL),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}
