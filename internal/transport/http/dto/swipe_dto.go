package dto

type SwipeRequest struct {
	TargetID int64  `json:"target_id"`
	Decision string `json:"decision"`
}

type SwipeResponse struct {
	OK       bool   `json:"ok"`
	Decision string `json:"decision"`
	IsMatch  bool   `json:"is_match"`
	MatchID  *int64 `json:"match_id,omitempty"`
}
