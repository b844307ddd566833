// Package users fetches user records from the remote directory API.
package users

// UserRecord is one entry of the remote user list. Values come from an
// untrusted endpoint and must be escaped before they reach a document.
type UserRecord struct {
	ID       int     `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

type Company struct {
	Name string `json:"name"`
}
