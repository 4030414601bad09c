package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("18:00"))
	assert.False(t, TimeString("18:00").IsAfter("18:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "across hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "to end of day", start: "23:00", minutes: 59, want: "23:59"},
		{name: "past midnight", start: "23:30", minutes: 60, wantErr: true},
		{name: "exactly midnight", start: "23:00", minutes: 60, wantErr: true},
		{name: "negative below zero", start: "00:10", minutes: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesBetween(t *testing.T) {
	got, err := TimeString("09:00").MinutesBetween("10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	got, err = TimeString("10:30").MinutesBetween("09:00")
	require.NoError(t, err)
	assert.Equal(t, -90, got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("15:00:00"))
	assert.Equal(t, TimeString("15:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:30")))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 12, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
