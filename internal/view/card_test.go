package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

func leanne() users.UserRecord {
	return users.UserRecord{
		ID:       1,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Phone:    "1-770-736-8031 x56442",
		Website:  "hildegard.org",
		Address: users.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
		},
		Company: users.Company{Name: "Romaguera-Crona"},
	}
}

func TestRenderCard(t *testing.T) {
	got := RenderCard(leanne())

	want := Card{
		Avatar:       "L",
		Name:         "Leanne Graham",
		Username:     "Bret",
		Email:        "Sincere@april.biz",
		AddressLine1: "Kulas Light Apt. 556",
		AddressLine2: "Gwenborough, 92998-3874",
		Phone:        "1-770-736-8031 x56442",
		Website:      "hildegard.org",
		Company:      "Romaguera-Crona",
	}
	assert.Equal(t, want, got)
}

func TestRenderCard_Avatar(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ervin", "E"},
		{"élodie", "é"},
		{"<b>", "<"},
		{"", "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := leanne()
			r.Name = tt.name
			assert.Equal(t, tt.want, RenderCard(r).Avatar)
		})
	}
}

func TestRenderCards_Stagger(t *testing.T) {
	records := []users.UserRecord{leanne(), leanne(), leanne()}

	cards := RenderCards(records, 100*time.Millisecond)

	assert.Len(t, cards, 3)
	for i, c := range cards {
		assert.Equal(t, time.Duration(i)*100*time.Millisecond, c.Delay)
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "10", FormatCount(10))
	assert.Equal(t, "1,234", FormatCount(1234))
	assert.Equal(t, "Loaded 1 user", countLabel(1))
	assert.Equal(t, "Loaded 2,000 users", countLabel(2000))
}
