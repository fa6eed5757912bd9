package gameModel

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStatsDecodeFull(t *testing.T) {
	var s Stats
	body := `{"total_actions":7,"highest_sum":11,"rounds":3,"playerScores":{"1":2,"2":1}}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r, ok := s.RoundsValue(); !ok || r != 3 {
		t.Errorf("Expected rounds 3, got %d (present=%v)", r, ok)
	}
	if s.TotalActionsOr(0) != 7 || s.HighestSumOr(0) != 11 {
		t.Errorf("Unexpected totals: %+v", s)
	}
	if s.ScoreOr(1, -1) != 2 || s.ScoreOr(2, -1) != 1 {
		t.Errorf("Unexpected scores: %v", s.PlayerScores)
	}
}

func TestStatsDecodeTreatsWrongTypesAsAbsent(t *testing.T) {
	var s Stats
	body := `{"total_actions":"seven","rounds":null,"highest_sum":[1],"playerScores":"none"}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := s.RoundsValue(); ok {
		t.Error("Expected rounds to be absent")
	}
	if s.TotalActionsOr(-1) != -1 || s.HighestSumOr(-1) != -1 {
		t.Errorf("Expected defaults, got %+v", s)
	}
	if s.ScoreOr(1, 0) != 0 {
		t.Errorf("Expected default score, got %d", s.ScoreOr(1, 0))
	}
}

func TestStatsDecodeNonObjectIsEmpty(t *testing.T) {
	for _, body := range []string{`[]`, `"oops"`, `42`, `true`} {
		s := Stats{Rounds: IntPtr(3)}
		if err := json.Unmarshal([]byte(body), &s); err != nil {
			t.Errorf("%s: unmarshal: %v", body, err)
			continue
		}
		if _, ok := s.RoundsValue(); ok || s.TotalActions != nil || s.PlayerScores != nil {
			t.Errorf("%s: expected empty stats, got %+v", body, s)
		}
	}
}

func TestStatsDecodeRejectsInexactNumbers(t *testing.T) {
	tcs := []struct {
		body    string
		want    int
		present bool
	}{
		{`{"rounds":4}`, 4, true},
		{`{"rounds":4.0}`, 4, true},
		{`{"rounds":-2}`, -2, true},
		{`{"rounds":4.9}`, 0, false},
		{`{"rounds":1e300}`, 0, false},
		{`{"rounds":-1e300}`, 0, false},
	}
	for _, tc := range tcs {
		var s Stats
		if err := json.Unmarshal([]byte(tc.body), &s); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.body, err)
		}
		if r, ok := s.RoundsValue(); r != tc.want || ok != tc.present {
			t.Errorf("%s: got %d (present=%v), want %d (present=%v)", tc.body, r, ok, tc.want, tc.present)
		}
	}
}

func TestStatsDecodeLegacyStateShape(t *testing.T) {
	var s Stats
	body := `{"mode":"solo","dice_count":1,"total_rolls":4,"highest_sum":9,"player1_score":3,"player2_score":1,"rounds":4}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.TotalActionsOr(0) != 4 {
		t.Errorf("Expected total_rolls fallback 4, got %d", s.TotalActionsOr(0))
	}
	if s.ScoreOr(1, 0) != 3 || s.ScoreOr(2, 0) != 1 {
		t.Errorf("Expected legacy scores, got %v", s.PlayerScores)
	}
}

func TestNilStatsAccessors(t *testing.T) {
	var s *Stats
	if _, ok := s.RoundsValue(); ok {
		t.Error("Expected nil stats to report no rounds")
	}
	if s.ScoreOr(2, 5) != 5 {
		t.Error("Expected nil stats to return the default score")
	}
}

func TestRollResponseNullStats(t *testing.T) {
	var resp RollResponse
	body := `{"event":{"player":{"dice":[3,5],"sum":8},"winner":null},"stats":null}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Stats != nil {
		t.Errorf("Expected nil stats, got %+v", resp.Stats)
	}
	if resp.Event.Winner != "" || resp.Event.Player == nil || resp.Event.Player.Sum != 8 {
		t.Errorf("Unexpected event: %+v", resp.Event)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"solo", "vs_computer", "two_player"} {
		if m, err := ParseMode(s); err != nil || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseMode("coop"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}
