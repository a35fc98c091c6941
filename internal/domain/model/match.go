package model

import "time"

// Match rows always store the pair in canonical order (UserAID < UserBID)
// so lookups are symmetric and the pair is naturally unique.
type Match struct {
	ID        int64     `json:"id"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}
