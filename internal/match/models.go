package match

type Match struct {
	ID        int64 `json:"id"`
	Mode      int   `json:"mode"`
	Duration  int   `json:"duration"`
	CreatedAt int64 `json:"created_at"`
}

// HistoryEntry is one row of a user's match history: the match plus that
// user's own score and outcome in it.
type HistoryEntry struct {
	Match  Match   `json:"match"`
	Score  float64 `json:"score"`
	Result string  `json:"result"` // win|loss|draw
}

type Stats struct {
	TotalGames int `json:"totalGames"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
}
