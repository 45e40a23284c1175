package models

import "time"

// Session is the one durable record the console owns: the upstream bearer
// token and the operator profile captured at login. Exactly one
// valid-or-absent session exists per session id at any time.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	Profile   UserProfile `json:"profile"`
	CreatedAt time.Time   `json:"created_at"`
}
