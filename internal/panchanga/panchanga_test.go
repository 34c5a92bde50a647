package panchanga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKaranaName_FixedAndMovableSlots(t *testing.T) {
	assert.Equal(t, "Kimstughna", karanaName(0))
	assert.Equal(t, "Bava", karanaName(1))
	assert.Equal(t, "Vishti", karanaName(7))
	assert.Equal(t, "Bava", karanaName(8)) // cycle restarts
	assert.Equal(t, "Shakuni", karanaName(57))
	assert.Equal(t, "Chatushpada", karanaName(58))
	assert.Equal(t, "Naga", karanaName(59))
	assert.Equal(t, "Kimstughna", karanaName(60)) // next month wraps
}

func TestTithiNames_ThirtyEntriesWithPakshaSplit(t *testing.T) {
	assert.Equal(t, "Purnima", tithiNames[14])
	assert.Equal(t, "Amavasya", tithiNames[29])
	assert.Equal(t, "Pratipada", tithiNames[0])
	assert.Equal(t, "Pratipada", tithiNames[15])
}

func TestYogaNames_TwentySevenEntries(t *testing.T) {
	assert.Len(t, yogaNames, 27)
	assert.Equal(t, "Vishkambha", yogaNames[0])
	assert.Equal(t, "Vaidhriti", yogaNames[26])
}

func TestSamvatYears_StandardOffsets(t *testing.T) {
	saka, vikram, gujarati := samvatYears(2026, 6) // Ashwin (Libra), mid-year
	assert.Equal(t, 2026-78, saka)
	assert.Equal(t, 2026+57, vikram)
	assert.Equal(t, 2026+56, gujarati)
}

func TestSamvatYears_RollsBackForTailMonths(t *testing.T) {
	saka, vikram, gujarati := samvatYears(2026, 10) // Magha (Aquarius), before Chaitra
	assert.Equal(t, 2026-78-1, saka)
	assert.Equal(t, 2026+57-1, vikram)
	assert.Equal(t, 2026+56, gujarati) // Gujarati year does not roll at Chaitra
}

func TestMarkerTargetForward_NextAmavasyaReachableFromEitherPaksha(t *testing.T) {
	// Shukla day (phase 45): the next Amavasya sits at unwrapped 360.
	assert.InDelta(t, 360, markerTargetForward(45, 360), 1e-9)
	// Krishna day (phase 250): same branch, 205 degrees (over half a month) closer.
	assert.InDelta(t, 360, markerTargetForward(250, 360), 1e-9)
}

func TestMarkerTargetBackward_LastAmavasyaAndPurnima(t *testing.T) {
	// The most recent Amavasya is at unwrapped 0 from either paksha.
	assert.InDelta(t, 0, markerTargetBackward(45, 0), 1e-9)
	assert.InDelta(t, 0, markerTargetBackward(250, 0), 1e-9)
	// The most recent Purnima from a Shukla day is the previous month's,
	// a full revolution below the 180 of the coming one.
	assert.InDelta(t, -180, markerTargetBackward(45, 180), 1e-9)
	assert.InDelta(t, 180, markerTargetBackward(250, 180), 1e-9)
}

func TestFormatClock_SameDayOmitsDateSuffix(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	ref := time.Date(2026, 1, 22, 6, 46, 0, 0, loc)
	at := time.Date(2026, 1, 22, 14, 28, 0, 0, loc)
	assert.Equal(t, "2:28 PM", formatClock(at, ref))
}

func TestFormatClock_NextDayCarriesDateSuffix(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	ref := time.Date(2026, 1, 22, 6, 46, 0, 0, loc)
	at := time.Date(2026, 1, 23, 2, 37, 0, 0, loc)
	assert.Equal(t, "2:37 AM, Jan 23", formatClock(at, ref))
}

func TestMonthNames_TwelveEntriesMatchSignOrder(t *testing.T) {
	assert.Equal(t, "Chaitra", monthNames[0])    // Aries
	assert.Equal(t, "Margashirsha", monthNames[8]) // Sagittarius, per Scenario B
	assert.Equal(t, "Phalguna", monthNames[11])  // Pisces
}
