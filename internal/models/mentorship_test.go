package models_test

import (
	"testing"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.RequestStatus
		to      models.RequestStatus
		allowed bool
	}{
		{"pending to accepted", models.StatusPending, models.StatusAccepted, true},
		{"pending to rejected", models.StatusPending, models.StatusRejected, true},
		{"pending to messaged", models.StatusPending, models.StatusMessaged, true},
		{"accepted to messaged", models.StatusAccepted, models.StatusMessaged, true},
		{"accepted to rejected", models.StatusAccepted, models.StatusRejected, false},
		{"rejected to accepted", models.StatusRejected, models.StatusAccepted, false},
		{"messaged to accepted", models.StatusMessaged, models.StatusAccepted, false},
		{"no way back to pending", models.StatusAccepted, models.StatusPending, false},
		{"rejected to pending", models.StatusRejected, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, models.StatusPending.IsTerminal())
	assert.False(t, models.StatusAccepted.IsTerminal())
	assert.True(t, models.StatusRejected.IsTerminal())
	assert.True(t, models.StatusMessaged.IsTerminal())
}
