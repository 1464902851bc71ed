package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartOptions_MorningGrid(t *testing.T) {
	opts := StartOptions(SessionMorning)

	assert.Len(t, opts, 16)
	assert.Equal(t, "08:00", opts[0].String())
	assert.Equal(t, "11:45", opts[len(opts)-1].String())
}

func TestStartOptions_AfternoonGrid(t *testing.T) {
	opts := StartOptions(SessionAfternoon)

	assert.Len(t, opts, 16)
	assert.Equal(t, "13:00", opts[0].String())
	assert.Equal(t, "16:45", opts[len(opts)-1].String())
}

func TestStartOptions_BothSessions(t *testing.T) {
	opts := StartOptions(SessionBoth)
	assert.Len(t, opts, 32)
}

func TestEndOptions_SkipsMiddayGap(t *testing.T) {
	start, _ := ParseTimeOfDay("09:00")
	opts := EndOptions(start)

	strs := make([]string, 0, len(opts))
	for _, o := range opts {
		strs = append(strs, o.String())
	}

	assert.Contains(t, strs, "12:00")
	assert.NotContains(t, strs, "12:15")
	assert.NotContains(t, strs, "13:00")
	assert.Contains(t, strs, "13:15")
	assert.Equal(t, "17:00", strs[len(strs)-1])
	// 09:15..12:00 plus 13:15..17:00
	assert.Len(t, opts, 28)
}

func TestEndOptions_StopAtSeventeen(t *testing.T) {
	start, _ := ParseTimeOfDay("16:45")
	opts := EndOptions(start)

	assert.Len(t, opts, 1)
	assert.Equal(t, "17:00", opts[0].String())

	close, _ := ParseTimeOfDay("17:00")
	assert.Empty(t, EndOptions(close))
}

func TestEndOptions_StrictlyAfterStart(t *testing.T) {
	for _, start := range StartOptions(SessionBoth) {
		for _, end := range EndOptions(start) {
			assert.Greater(t, int(end), int(start))
		}
	}
}

func TestValidateWindow(t *testing.T) {
	nine, _ := ParseTimeOfDay("09:00")
	eleven, _ := ParseTimeOfDay("11:00")

	assert.NoError(t, ValidateWindow(&nine, &eleven))
	assert.ErrorIs(t, ValidateWindow(nil, &eleven), ErrMissingTime)
	assert.ErrorIs(t, ValidateWindow(&nine, nil), ErrMissingTime)
	assert.ErrorIs(t, ValidateWindow(&eleven, &nine), ErrEndBeforeStart)
	assert.ErrorIs(t, ValidateWindow(&nine, &nine), ErrEndBeforeStart)
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	// Every generated option must survive format -> parse unchanged.
	for _, start := range StartOptions(SessionBoth) {
		parsed, err := ParseTimeOfDay(start.String())
		assert.NoError(t, err)
		assert.Equal(t, start, parsed)

		for _, end := range EndOptions(start) {
			parsed, err := ParseTimeOfDay(end.String())
			assert.NoError(t, err)
			assert.Equal(t, end, parsed)
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "9", "25:00", "09:60", "ab:cd"} {
		_, err := ParseTimeOfDay(s)
		assert.Error(t, err, s)
	}
}
