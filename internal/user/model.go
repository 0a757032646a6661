package user

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	// Password is the stored credential. It never serializes to JSON.
	Password string `json:"-"`
}
