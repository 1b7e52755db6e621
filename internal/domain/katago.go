package domain

// AnalysisRequest is one query to the KataGo analysis engine, written as a
// JSON line to its stdin. ID must be unique per request; we key it by the
// uuid of the game node the analysis is for, so a late answer can still be
// attached to the right node. Lower Priority is served later; re-requesting
// the same node with a cheaper budget is the only way to supersede a query.
type AnalysisRequest struct {
	ID               string      `json:"id"`
	Moves            [][2]string `json:"moves"` // [["b","D4"], ["w","Q16"], ...]
	InitialStones    [][2]string `json:"initialStones,omitempty"`
	Rules            string      `json:"rules"`
	Komi             float64     `json:"komi"`
	BoardXSize       int         `json:"boardXSize"`
	BoardYSize       int         `json:"boardYSize"`
	MaxVisits        int         `json:"maxVisits,omitempty"`
	Priority         int         `json:"priority,omitempty"`
	IncludeOwnership bool        `json:"includeOwnership,omitempty"`
}

// AnalysisResponse is one KataGo answer line, ID matching the request.
type AnalysisResponse struct {
	ID             string     `json:"id"`
	TurnNumber     int        `json:"turnNumber"`
	IsDuringSearch bool       `json:"isDuringSearch"`
	Error          string     `json:"error,omitempty"`
	RootInfo       RootInfo   `json:"rootInfo"`
	MoveInfos      []MoveInfo `json:"moveInfos"`
}

// RootInfo summarises the analysed position itself.
type RootInfo struct {
	CurrentPlayer string  `json:"currentPlayer"` // "W" or "B"
	Winrate       float64 `json:"winrate"`
	ScoreLead     float64 `json:"scoreLead"`
	ScoreSelfplay float64 `json:"scoreSelfplay"`
	ScoreStdev    float64 `json:"scoreStdev"`
	Utility       float64 `json:"utility"`
	Visits        int     `json:"visits"`
}

// MoveInfo is one candidate move, ranked by Order (0 = engine's best).
type MoveInfo struct {
	Move      string   `json:"move"`
	Order     int      `json:"order"`
	Winrate   float64  `json:"winrate"`
	Visits    int      `json:"visits"`
	ScoreLead float64  `json:"scoreLead"`
	PV        []string `json:"pv"`
}
