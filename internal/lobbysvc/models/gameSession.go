package models

import "time"

// GameSession is a timed play record. EndedAt is nil while the session
// is open; a user may hold several open sessions, operations that need
// "the" session resolve the most recently started open one.
type GameSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	GameID    string     `json:"gameId"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

// PlayedGame pairs a session with its game for the recent-games read path.
type PlayedGame struct {
	Session GameSession `json:"session"`
	Game    Game        `json:"game"`
}
