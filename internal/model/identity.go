package model

import "strings"

// ExternalIdentity is the assertion handed over by the identity provider for an authenticated session.
type ExternalIdentity struct {
	ExternalID     string   `json:"external_id"`
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Username       *string  `json:"username"`
	EmailAddresses []string `json:"email_addresses"`
	ImageURL       string   `json:"image_url"`
}

func (i *ExternalIdentity) Caller() Caller {
	if i == nil {
		return Anonymous
	}
	return Caller{ExternalID: strings.TrimSpace(i.ExternalID)}
}

// Caller identifies who is issuing a request. The zero value is an anonymous caller.
type Caller struct {
	ExternalID string
}

var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool {
	return c.ExternalID == ""
}
