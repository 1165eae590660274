package fill

// Scorer keeps the vibe point total of a session. Each question is awarded at
// most once, however often it flips between answered and unanswered.
type Scorer struct {
	Awarded map[string]int `json:"awarded"`
	Total   int            `json:"total"`
}

// AwardIfFirstAnswer adds points for questionID unless it was awarded before,
// and returns the running total.
func (s *Scorer) AwardIfFirstAnswer(questionID string, points int) int {
	if s.Awarded == nil {
		s.Awarded = make(map[string]int)
	}
	if _, ok := s.Awarded[questionID]; ok {
		return s.Total
	}
	s.Awarded[questionID] = points
	s.Total += points
	return s.Total
}

// Settled is the total counting only questions that are still answered.
func (s *Scorer) Settled(answers Store) int {
	total := 0
	for id, points := range s.Awarded {
		if answers.Has(id) {
			total += points
		}
	}
	return total
}
