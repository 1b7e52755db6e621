package game

import "time"

// CreateGameRequest is the payload for starting a fresh game.
type CreateGameRequest struct {
	BoardSize int     `json:"board_size"`
	Komi      float64 `json:"komi"`
	Handicap  int     `json:"handicap"`
}

// CreateGameResponse carries the id the caller uses for every later request.
type CreateGameResponse struct {
	GameID    string  `json:"game_id"`
	BoardSize int     `json:"board_size"`
	Komi      float64 `json:"komi"`
	SGF       string  `json:"sgf"`
}

// MoveRequest is a move on the wire, GTP coordinates ("D4" or "pass").
type MoveRequest struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

// StateResponse reports the session state after a committed move or a
// navigation call.
type StateResponse struct {
	GameID     string        `json:"game_id"`
	LastMove   string        `json:"last_move,omitempty"`
	NextPlayer Color         `json:"next_player"`
	Prisoners  map[Color]int `json:"prisoners"`
	Captured   []string      `json:"captured,omitempty"`
	GameEnded  bool          `json:"game_ended"`
	SGF        string        `json:"sgf"`
}

// Record is the archive document for a finished or exported game.
type Record struct {
	GameID         string    `json:"game_id" bson:"game_id"`
	BoardSize      int       `json:"board_size" bson:"board_size"`
	Komi           float64   `json:"komi" bson:"komi"`
	Handicap       int       `json:"handicap" bson:"handicap"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	FinishedAt     time.Time `json:"finished_at" bson:"finished_at"`
	PrisonersBlack int       `json:"prisoners_black" bson:"prisoners_black"`
	PrisonersWhite int       `json:"prisoners_white" bson:"prisoners_white"`
	SGF            string    `json:"sgf" bson:"sgf"`
}
