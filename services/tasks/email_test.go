package tasks

import (
	"testing"
	"time"

	"detailing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailTaskRoundTrip(t *testing.T) {
	payload := models.EmailPayload{BookingID: "bk-1", To: "sam@example.com", Subject: "Hi", Body: "See you", Kind: "confirmation"}

	task, opts, err := NewEmailTask(payload, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, TypeEmailSend, task.Type())
	assert.Len(t, opts, 3)

	got, err := ParseEmailPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestEmailTaskScheduled(t *testing.T) {
	_, opts, err := NewEmailTask(models.EmailPayload{To: "sam@example.com"}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	// retry, timeout, process-at; no task ID without a booking
	assert.Len(t, opts, 3)
}
