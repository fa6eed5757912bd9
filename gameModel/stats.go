package gameModel

import (
	"encoding/json"
	"math"
	"strconv"
)

// Stats mirrors the server's aggregate counters. Every field is optional: a nil
// pointer or nil map means the server did not send a usable value.
type Stats struct {
	TotalActions *int           `json:"total_actions,omitempty"`
	HighestSum   *int           `json:"highest_sum,omitempty"`
	Rounds       *int           `json:"rounds,omitempty"`
	PlayerScores map[string]int `json:"playerScores,omitempty"`
}

func IntPtr(v int) *int { return &v }

// RoundsValue reports the server round count and whether it was present.
func (s *Stats) RoundsValue() (int, bool) {
	if s == nil || s.Rounds == nil {
		return 0, false
	}
	return *s.Rounds, true
}

func (s *Stats) TotalActionsOr(def int) int {
	if s == nil || s.TotalActions == nil {
		return def
	}
	return *s.TotalActions
}

func (s *Stats) HighestSumOr(def int) int {
	if s == nil || s.HighestSum == nil {
		return def
	}
	return *s.HighestSum
}

// ScoreOr returns the score for player id ("1", "2") or def when absent.
func (s *Stats) ScoreOr(player int, def int) int {
	if s == nil || s.PlayerScores == nil {
		return def
	}
	v, ok := s.PlayerScores[strconv.Itoa(player)]
	if !ok {
		return def
	}
	return v
}

// UnmarshalJSON decodes leniently. A field holding the wrong JSON type is
// treated as absent instead of failing the whole payload, and a payload that
// is not an object decodes to empty stats.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = Stats{}
		return nil
	}
	*s = Stats{
		TotalActions: lenientInt(raw, "total_actions", "total_rolls"),
		HighestSum:   lenientInt(raw, "highest_sum"),
		Rounds:       lenientInt(raw, "rounds"),
	}
	if msg, ok := raw["playerScores"]; ok {
		var scores map[string]json.RawMessage
		if json.Unmarshal(msg, &scores) == nil && scores != nil {
			s.PlayerScores = make(map[string]int, len(scores))
			for id, v := range scores {
				if n := decodeInt(v); n != nil {
					s.PlayerScores[id] = *n
				}
			}
		}
	}
	if s.PlayerScores == nil {
		p1 := lenientInt(raw, "player1_score")
		p2 := lenientInt(raw, "player2_score")
		if p1 != nil || p2 != nil {
			s.PlayerScores = map[string]int{}
			if p1 != nil {
				s.PlayerScores["1"] = *p1
			}
			if p2 != nil {
				s.PlayerScores["2"] = *p2
			}
		}
	}
	return nil
}

// lenientInt returns the first key that holds a JSON number.
func lenientInt(raw map[string]json.RawMessage, keys ...string) *int {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if n := decodeInt(v); n != nil {
				return n
			}
		}
	}
	return nil
}

func decodeInt(msg json.RawMessage) *int {
	var f *float64
	if err := json.Unmarshal(msg, &f); err != nil || f == nil {
		return nil
	}
	// Fractions and values outside the int32 range count as absent.
	if *f != math.Trunc(*f) || *f < math.MinInt32 || *f > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}
