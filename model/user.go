package model

import "time"

/*
User is an account that authors posts, comments and reactions.

Id: primary key
Username: unique login name
Email: unique email address
HashedPassword: password digest, never serialized
Profile: public profile, "has-one" relation, may be nil when not loaded
Following / Followers: self-referential "many-to-many" relation through the user_follows table, only loaded on demand
Role: USER, MODERATOR or ADMIN
*/
type User struct {
	Id             int64    `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	HashedPassword string   `json:"-"`
	Profile        *Profile `json:"profile,omitempty"`
	Following      []*User  `json:"following,omitempty"`
	Followers      []*User  `json:"followers,omitempty"`
	Role           Role     `json:"role,omitempty"`
}

// Profile belongs to exactly one user. Avatar is optional.
type Profile struct {
	Id          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	Avatar      *Media    `json:"avatar,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
}
