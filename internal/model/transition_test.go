package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_ForwardPath(t *testing.T) {
	// pending -> confirmed -> checked in -> checked out, no skipping
	assert.True(t, CanTransition(ReservationPending, ReservationConfirmed))
	assert.True(t, CanTransition(ReservationPending, ReservationCheckedIn)) // walk-in check-in from pending
	assert.True(t, CanTransition(ReservationConfirmed, ReservationCheckedIn))
	assert.True(t, CanTransition(ReservationCheckedIn, ReservationCheckedOut))

	assert.False(t, CanTransition(ReservationPending, ReservationCheckedOut))
	assert.False(t, CanTransition(ReservationConfirmed, ReservationCheckedOut))
	assert.False(t, CanTransition(ReservationCheckedOut, ReservationCheckedIn))
}

func TestCanTransition_Cancellation(t *testing.T) {
	assert.True(t, CanTransition(ReservationPending, ReservationCancelled))
	assert.True(t, CanTransition(ReservationConfirmed, ReservationCancelled))
	// no cancellation once the guest is in house or gone
	assert.False(t, CanTransition(ReservationCheckedIn, ReservationCancelled))
	assert.False(t, CanTransition(ReservationCheckedOut, ReservationCancelled))
	assert.False(t, CanTransition(ReservationCancelled, ReservationConfirmed))
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("ARCHIVED", ReservationConfirmed))
	assert.False(t, CanTransition(ReservationPending, "ARCHIVED"))
}

func TestCheckTransition_Error(t *testing.T) {
	require.NoError(t, CheckTransition(ReservationConfirmed, ReservationCheckedIn))

	err := CheckTransition(ReservationCheckedIn, ReservationCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "CHECKED_IN -> CANCELLED")
}

func TestCheckInSources(t *testing.T) {
	assert.ElementsMatch(t, []string{ReservationPending, ReservationConfirmed}, CheckInSources())
	assert.ElementsMatch(t, []string{ReservationPending, ReservationConfirmed}, CancelSources())
}
