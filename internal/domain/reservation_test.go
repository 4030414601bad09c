package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/RC-FacilityService/pkg/ptr"
)

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusAgree, true},
		{StatusPending, StatusReject, true},
		{StatusPending, StatusCancel, true},
		{StatusPending, StatusPending, false},
		{StatusAgree, StatusCancel, true},
		{StatusAgree, StatusReject, false},
		{StatusAgree, StatusPending, false},
		{StatusAgree, StatusAgree, false},
		{StatusReject, StatusAgree, false},
		{StatusReject, StatusCancel, false},
		{StatusCancel, StatusPending, false},
		{StatusCancel, StatusAgree, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAgree.IsTerminal())
	assert.True(t, StatusReject.IsTerminal())
	assert.True(t, StatusCancel.IsTerminal())
}

func TestFacilityReservation_IsActive(t *testing.T) {
	r := &FacilityReservation{Status: StatusPending}
	assert.True(t, r.IsActive())

	r.Status = StatusAgree
	assert.True(t, r.IsActive())

	r.Status = StatusReject
	assert.False(t, r.IsActive())

	r.Status = StatusCancel
	assert.False(t, r.IsActive())
}

func TestFacilityReservation_CanBeCancelled(t *testing.T) {
	r := &FacilityReservation{Status: StatusPending}
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusAgree
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusCancel
	assert.False(t, r.CanBeCancelled())

	r.Status = StatusReject
	assert.False(t, r.CanBeCancelled())
}

func TestValidateCancelReason(t *testing.T) {
	tests := []struct {
		name       string
		reasonType CancelReasonType
		reason     *string
		wantErr    error
	}{
		{name: "personal schedule without text", reasonType: CancelReasonPersonalSchedule},
		{name: "health without text", reasonType: CancelReasonHealth},
		{name: "facility issue without text", reasonType: CancelReasonFacilityIssue},
		{name: "other with text", reasonType: CancelReasonOther, reason: ptr.Ptr("уезжаю в отпуск")},
		{name: "other without text", reasonType: CancelReasonOther, wantErr: ErrMissingCancelReason},
		{name: "other with blank text", reasonType: CancelReasonOther, reason: ptr.Ptr("   "), wantErr: ErrMissingCancelReason},
		{name: "unknown type", reasonType: "weather", wantErr: ErrInvalidCancelReasonType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCancelReason(tt.reasonType, tt.reason)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDayOfWeek_RoundTrip(t *testing.T) {
	for _, day := range AllDaysOfWeek {
		assert.Equal(t, day, DayOfWeekFromWeekday(day.Weekday()))
	}
}
