package domain

// Identity is the display identity decoded from the credential. It is not
// verified client side and must never be used for authorization decisions.
type Identity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Session is an immutable snapshot of the authentication state.
type Session struct {
	Credential string
	Identity   *Identity
}

func (s Session) Authenticated() bool {
	return s.Credential != "" && s.Identity != nil
}

func (s Session) Empty() bool {
	return !s.Authenticated()
}

// WithIdentity returns a copy of the session carrying id.
func (s Session) WithIdentity(id Identity) Session {
	return Session{Credential: s.Credential, Identity: &id}
}
