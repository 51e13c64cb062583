package model

import (
	"encoding/json"
	"math"
)

// Statistic is the accepted/total field count for one review.
type Statistic struct {
	FieldCount    int
	AcceptedCount int
}

// The deployed backend spells the accepted count key "accpected_count".
// Newer builds use the corrected spelling, so the decoder takes either.
func (s *Statistic) UnmarshalJSON(data []byte) error {
	var w struct {
		FieldCount     int  `json:"field_count"`
		AcceptedCount  *int `json:"accepted_count"`
		AccpectedCount *int `json:"accpected_count"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.FieldCount = w.FieldCount
	switch {
	case w.AcceptedCount != nil:
		s.AcceptedCount = *w.AcceptedCount
	case w.AccpectedCount != nil:
		s.AcceptedCount = *w.AccpectedCount
	default:
		s.AcceptedCount = 0
	}
	return nil
}

func (s Statistic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FieldCount    int `json:"field_count"`
		AcceptedCount int `json:"accepted_count"`
	}{s.FieldCount, s.AcceptedCount})
}

// Percent returns the reviewed ratio rounded to the nearest whole percent
// and clamped to [0,100]. A review with no fields has no meaningful
// progress; the second return is false in that case.
func (s Statistic) Percent() (int, bool) {
	if s.FieldCount <= 0 {
		return 0, false
	}
	percent := int(math.Round(float64(s.AcceptedCount) / float64(s.FieldCount) * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
