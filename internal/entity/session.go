package entity

import "time"

// Session binds one browser (or shell) to the game it is playing.
type Session struct {
	ID        string    `json:"id"`
	Game      GameState `json:"game"`
	UpdatedAt time.Time `json:"updated_at"`
}
