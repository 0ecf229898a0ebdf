// Package models defines client-side data models exchanged with the CRM backend.
package models

// User is the identity record of the authenticated account. Beyond role and
// onboarding checks the client treats it as opaque backend data.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Organization string  `json:"organization,omitempty"`
	Balance      float64 `json:"balance,omitempty"`
}
