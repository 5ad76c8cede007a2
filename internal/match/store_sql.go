package match

import (
	"context"
	"database/sql"
)

type Store interface {
	History(ctx context.Context, userID int64) ([]HistoryEntry, error)
	Stats(ctx context.Context, userID int64) (Stats, error)
}

type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) History(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.mode, m.duration, m.created_at, p.score, p.result
		FROM match_participants p
		JOIN matches m ON m.id = p.match_id
		WHERE p.user_id = $1
		ORDER BY m.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Match.ID, &e.Match.Mode, &e.Match.Duration,
			&e.Match.CreatedAt, &e.Score, &e.Result); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) Stats(ctx context.Context, userID int64) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result, COUNT(*) FROM match_participants WHERE user_id = $1 GROUP BY result`, userID)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	var st Stats
	for rows.Next() {
		var result string
		var n int
		if err := rows.Scan(&result, &n); err != nil {
			return Stats{}, err
		}
		switch result {
		case "win":
			st.Wins = n
		case "loss":
			st.Losses = n
		case "draw":
			st.Draws = n
		}
		st.TotalGames += n
	}
	return st, rows.Err()
}
