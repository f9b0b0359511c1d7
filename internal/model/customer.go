package model

import "time"

// GeoPoint is an optional location attached to a customer.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Customer represents a customer row shown on the customer listing.
// Records are created on signup or by the owner and are never edited.
type Customer struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	AltPhone string    `json:"altPhone,omitempty"`
	Email    string    `json:"email,omitempty"`
	Joined   time.Time `json:"joined"`
	Location *GeoPoint `json:"location"`
}

// AddCustomerRequest is used by the owner to register a walk-in customer.
type AddCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	AltPhone string `json:"altPhone"`
}
