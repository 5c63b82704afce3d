package model

import "time"

// User is a registered account. PasswordHash never leaves the server; use
// dto.ToUserResponse for anything sent to a client.
type User struct {
	ID           string    `bson:"_id" json:"-"`
	Username     string    `bson:"username" json:"-"`
	Email        string    `bson:"email" json:"-"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
}
