package user

// Principal is the authenticated caller behind a request.
type Principal struct {
	UserID   string
	Email    string
	Username string
}
