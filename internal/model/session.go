package model

// Session is the pair of credentials returned by a successful login, plus
// the display name echoed back to the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
}
