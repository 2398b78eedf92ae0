package domain

// Session is the authenticated identity for the current user. Token and
// Email are set together by a successful login and cleared together on
// logout or credential rejection, never one without the other.
type Session struct {
	Token string
	Email string
}

func (s Session) Established() bool {
	return s.Token != "" && s.Email != ""
}
