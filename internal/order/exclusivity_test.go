package order

import (
	"testing"

	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"

	"github.com/stretchr/testify/assert"
)

func TestCheckAvailability(t *testing.T) {
	ownerID := 7

	tests := []struct {
		name        string
		beat        *beat.Beat
		requester   int
		expectError bool
	}{
		{
			name:      "non-exclusive beat is open to everyone",
			beat:      &beat.Beat{ID: 1, Title: "Open Beat"},
			requester: 3,
		},
		{
			name: "exclusive beat blocks other buyers",
			beat: &beat.Beat{
				ID:               2,
				Title:            "Locked Beat",
				IsExclusive:      true,
				ExclusiveOwnerID: &ownerID,
			},
			requester:   3,
			expectError: true,
		},
		{
			name: "exclusive owner may buy again",
			beat: &beat.Beat{
				ID:               2,
				Title:            "Locked Beat",
				IsExclusive:      true,
				ExclusiveOwnerID: &ownerID,
			},
			requester: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(tt.beat, tt.requester)
			if tt.expectError {
				assert.Error(t, err)
				var blocked *ExclusivityBlockedError
				assert.ErrorAs(t, err, &blocked)
				assert.Equal(t, "Locked Beat", blocked.BeatTitle)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGrantsExclusivity(t *testing.T) {
	assert.False(t, GrantsExclusivity(nil))
	assert.False(t, GrantsExclusivity(&license.License{ID: 1, Name: "Standard"}))
	assert.True(t, GrantsExclusivity(&license.License{ID: 2, Name: "Exclusive", IsExclusive: true}))
}
