package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoToNext_StopsAtLastStep(t *testing.T) {
	s := NewSession()

	for i := 0; i < TotalSteps+3; i++ {
		s.GoToNext()
	}

	assert.Equal(t, TotalSteps, s.CurrentStep)
}

func TestGoToPrevious_StopsAtFirstStep(t *testing.T) {
	s := NewSession()
	s.CurrentStep = 3

	s.GoToPrevious()
	s.GoToPrevious()
	s.GoToPrevious()
	s.GoToPrevious()

	assert.Equal(t, 1, s.CurrentStep)
}

func TestProgress(t *testing.T) {
	s := NewSession()

	assert.InDelta(t, 100.0/6.0, s.Progress(), 0.001)

	s.CurrentStep = 3
	assert.InDelta(t, 50.0, s.Progress(), 0.001)

	s.CurrentStep = TotalSteps
	assert.InDelta(t, 100.0, s.Progress(), 0.001)
}
