package models

// Office holds the contact details of one office location.
type Office struct {
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Offices maps a location key to its office.
type Offices map[string]Office
