package view

import (
	"time"
	"unicode/utf8"

	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

// Card is the display form of one user record. Fields hold raw text;
// escaping happens when a card is rendered into a document.
type Card struct {
	Avatar       string
	Name         string
	Username     string
	Email        string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Website      string
	Company      string

	// Delay is how long after insertion the card fades in.
	Delay time.Duration
}

// RenderCard maps a record to its card. It is pure: the same record always
// yields the same card, with a zero Delay.
func RenderCard(r users.UserRecord) Card {
	return Card{
		Avatar:       initial(r.Name),
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		AddressLine1: r.Address.Street + " " + r.Address.Suite,
		AddressLine2: r.Address.City + ", " + r.Address.Zipcode,
		Phone:        r.Phone,
		Website:      r.Website,
		Company:      r.Company.Name,
	}
}

// RenderCards maps records in order, staggering each card's reveal by
// index * stagger.
func RenderCards(records []users.UserRecord, stagger time.Duration) []Card {
	cards := make([]Card, len(records))
	for i, r := range records {
		cards[i] = RenderCard(r)
		cards[i].Delay = time.Duration(i) * stagger
	}
	return cards
}

func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(r)
}
