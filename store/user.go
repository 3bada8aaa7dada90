package store

// User is a registered account. The email doubles as the conversation
// thread identifier, so it is unique and immutable after signup.
type User struct {
	ID        int32
	Email     string
	// PasswordHash is the hex-encoded PBKDF2 digest of the password and
	// the per-user salt. Never transmitted.
	PasswordHash string
	// Salt is generated once at signup and never changes.
	Salt      string
	CreatedTs int64
	UpdatedTs int64
}

type FindUser struct {
	ID    *int32
	Email *string
}
