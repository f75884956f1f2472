package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHaul(t *testing.T) {
	tests := []struct {
		minutes  int
		expected HaulType
	}{
		{1, HaulShort},
		{180, HaulShort},
		{181, HaulMedium},
		{330, HaulMedium},
		{360, HaulMedium},
		{361, HaulLong},
		{900, HaulLong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyHaul(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestParseHaulType(t *testing.T) {
	h, err := ParseHaulType(" Long ")
	require.NoError(t, err)
	assert.Equal(t, HaulLong, h)

	h, err = ParseHaulType("")
	require.NoError(t, err)
	assert.Equal(t, HaulType(""), h)

	_, err = ParseHaulType("ultra")
	assert.Error(t, err)
}

func TestHaulPreferencesWeight(t *testing.T) {
	weighted := WeightedHaul(50, 30, 20)
	assert.Equal(t, 50.0, weighted.Weight(HaulShort))
	assert.Equal(t, 30.0, weighted.Weight(HaulMedium))
	assert.Equal(t, 20.0, weighted.Weight(HaulLong))
	assert.Equal(t, 100.0, weighted.TotalWeight())

	single := PreferHaul(HaulMedium)
	assert.Equal(t, 0.0, single.Weight(HaulShort))
	assert.Equal(t, 1.0, single.Weight(HaulMedium))
	assert.True(t, single.Selectable())

	anyHaul := PreferHaul(HaulAny)
	assert.Equal(t, 3.0, anyHaul.TotalWeight())

	assert.False(t, WeightedHaul(0, 0, 0).Selectable())
}

func TestHaulPreferencesDominant(t *testing.T) {
	tests := []struct {
		name  string
		prefs HaulPreferences
		want  HaulType
		ok    bool
	}{
		{"single", PreferHaul(HaulLong), HaulLong, true},
		{"any", PreferHaul(HaulAny), "", false},
		{"weighted", WeightedHaul(10, 70, 20), HaulMedium, true},
		{"shared max", WeightedHaul(40, 40, 20), "", false},
		{"all zero", WeightedHaul(0, 0, 0), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.prefs.Dominant()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleRequestResolution(t *testing.T) {
	req := ScheduleRequest{StartLocation: "LAX", DurationDays: 2}
	assert.Equal(t, "LAX", req.ResolvedEndLocation())
	assert.Equal(t, "LAX", req.ResolvedHomeBase())
	assert.Equal(t, 2880, req.BudgetMinutes())
	assert.Equal(t, DefaultMaxLayoverMinutes, req.LayoverCapMinutes())

	req.HomeBase = "DFW"
	req.ReturnTo = ReturnToHomeBase
	assert.Equal(t, "DFW", req.ResolvedEndLocation())

	req.EndLocation = "JFK"
	assert.Equal(t, "JFK", req.ResolvedEndLocation())
}
