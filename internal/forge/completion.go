package forge

import "github.com/apocrypha/forge/internal/models"

// CompletionStatus summarizes how far a session is from being
// submittable.
type CompletionStatus struct {
	CompletedCount int  `json:"completed_count"`
	TotalCount     int  `json:"total_count"`
	CanSubmit      bool `json:"can_submit"`
}

// CompletionStatus is a pure function over the session's consideration
// map. Legacy and structured representations may coexist in one session;
// both count toward completion by the same word threshold.
func (s *Service) CompletionStatus(sess *models.Session) CompletionStatus {
	status := CompletionStatus{TotalCount: len(s.cfg.Considerations)}
	if sess == nil {
		return status
	}

	minWords := s.cfg.Requirements.MinWordsPerConsideration
	for _, c := range sess.Considerations {
		if isComplete(c, minWords) {
			status.CompletedCount++
		}
	}
	status.CanSubmit = status.CompletedCount >= s.cfg.Requirements.MinCompletedConsiderations
	return status
}
