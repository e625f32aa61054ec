package domain

import (
	"github.com/google/uuid"

	"github.com/meetzone/meetzone/internal/infrastructure/validate"
)

// Participant is one roster entry. LocalTime is empty until the schedule
// draft holds a complete instant, and is overwritten on every restamp; a
// stamped participant never reverts to unstamped.
type Participant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Country   Country `json:"country"`
	LocalTime string  `json:"localTime,omitempty"`
}

var (
	validateName  = validate.Field("name", validate.Required(), validate.MaxLength(120))
	validateEmail = validate.Field("email", validate.Required(), validate.Email())
)

// NewParticipant builds a roster entry with a fresh unique id. Name, email
// and country are all mandatory; a zero-value country rejects the whole
// entry so a failed add never mutates the roster.
func NewParticipant(name, email string, country Country) (*Participant, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !country.Valid() {
		return nil, ErrInvalidInput
	}

	return &Participant{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Country: country,
	}, nil
}
