package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Classification
	}{
		{"Scheduled", ClassScheduled},
		{"scheduled", ClassScheduled},
		{"Checked-in", ClassCheckedIn},
		{"CHECKED-IN", ClassCheckedIn},
		{"check-in", ClassCheckedIn},
		{"  Check-In  ", ClassCheckedIn},
		{"In Consultation", ClassInConsultation},
		{"in consultation", ClassInConsultation},
		{"Completed", ClassCompleted},
		{"Cancelled", ClassCancelled},
		{"", ClassUnknown},
		{"no-show", ClassUnknown},
		{"checkedin", ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.raw), "raw=%q", tt.raw)
	}
}

func TestQueueMembership(t *testing.T) {
	assert.False(t, ClassScheduled.InLiveQueue())
	assert.True(t, ClassCheckedIn.InLiveQueue())
	assert.True(t, ClassInConsultation.InLiveQueue())
	assert.True(t, ClassCompleted.InLiveQueue())
	assert.False(t, ClassCancelled.InLiveQueue())
	assert.False(t, ClassUnknown.InLiveQueue())

	assert.True(t, ClassScheduled.OnTodayList())
	assert.True(t, ClassCompleted.OnTodayList())
	assert.False(t, ClassCancelled.OnTodayList())
	assert.False(t, ClassUnknown.OnTodayList())

	assert.True(t, ClassScheduled.Upcoming())
	assert.True(t, ClassCheckedIn.Upcoming())
	assert.False(t, ClassInConsultation.Upcoming())
	assert.False(t, ClassCompleted.Upcoming())
}

func TestQueueDisplayStatus(t *testing.T) {
	assert.Equal(t, "Waiting", QueueDisplayStatus(ClassCheckedIn))
	assert.Equal(t, "In Consultation", QueueDisplayStatus(ClassInConsultation))
	assert.Equal(t, "Ready for Billing", QueueDisplayStatus(ClassCompleted))
	assert.Equal(t, "Waiting", QueueDisplayStatus(ClassUnknown))
}
