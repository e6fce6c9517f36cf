package shared

import "strings"

// shared types across the application

// Principal is the caller identity established by the identity provider for one request.
// Every core operation receives it explicitly; a nil *Principal means an anonymous caller.
type Principal struct {
	Subject   string `json:"sub"`        // identity provider subject id
	Email     string `json:"email"`      // primary email, may be empty
	FirstName string `json:"first_name"` // profile first name
	LastName  string `json:"last_name"`  // profile last name
	ImageURL  string `json:"image_url"`  // avatar url
}

// DisplayName joins the non-empty name parts with a space.
// The second return value is false when neither part is set.
func (p Principal) DisplayName() (string, bool) {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.FirstName, p.LastName} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// Avatar returns the image url or nil when empty.
func (p Principal) Avatar() *string {
	if p.ImageURL == "" {
		return nil
	}
	u := p.ImageURL
	return &u
}
