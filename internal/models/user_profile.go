package models

// UserProfile is the identity decoded from a verified Firebase ID token.
// It lives for one request and is never persisted.
type UserProfile struct {
	UID         string  `json:"uid"`
	Email       *string `json:"email,omitempty"`
	Name        string  `json:"name"`
	Picture     *string `json:"picture,omitempty"`
	IsAnonymous bool    `json:"isAnonymous"`
}

// UserType returns the userType tag stored on conversations owned by this profile.
func (p *UserProfile) UserType() string {
	if p.IsAnonymous {
		return "anonymous"
	}
	return "authenticated"
}
