package form

// GoToNext advances the session one step. It does not validate; callers must
// confirm the current step validates before calling it. At the last step it
// is a no-op.
func (s *Session) GoToNext() {
	if s.CurrentStep < TotalSteps {
		s.CurrentStep++
	}
}

// GoToPrevious moves the session back one step; at step 1 it is a no-op.
func (s *Session) GoToPrevious() {
	if s.CurrentStep > 1 {
		s.CurrentStep--
	}
}

// Progress returns the completion percentage for the current step. The
// canonical formula is currentStep/totalSteps, so a session on step 1 is
// already partially complete.
func (s *Session) Progress() float64 {
	return float64(s.CurrentStep) / float64(TotalSteps) * 100
}
