// Package dasha generates the Vimśottarī Daśā timeline — a fixed
// 120-year, nine-lord cycle keyed off the Moon's birth nakṣatra.
package dasha

import (
	"time"

	"vedicengine/internal/zodiac"
	"vedicengine/pkg/apperr"
)

// totalCycleYears is the fixed length of one full Vimśottarī cycle.
const totalCycleYears = 120.0

const nakshatraSpan = 360.0 / 27.0

// yearsFor gives each of the nine lords' Mahādaśā length in years; the
// nine values sum to exactly 120 (spec §8 testable property #8).
var yearsFor = map[string]float64{
	"Ketu": 7, "Venus": 20, "Sun": 6, "Moon": 10, "Mars": 7,
	"Rahu": 18, "Jupiter": 16, "Saturn": 19, "Mercury": 17,
}

// Period is one level of the Daśā tree. Antardaśās recurse one level
// (spec.md scopes sub-periods to Antardaśā, not Pratyantardaśā).
type Period struct {
	Lord       string    `json:"lord"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	SubPeriods []Period  `json:"sub_periods,omitempty"`
}

// DurationYears returns the period's length, used to validate the
// 120-year and sub-period-sum invariants in tests.
func (p Period) DurationYears() float64 {
	return p.End.Sub(p.Start).Hours() / (24 * 365.2425)
}

// Generate builds the Mahādaśā timeline starting at birth, covering at
// least minYears of Daśā time (the caller typically asks for the full
// 120-year cycle). moonLongitude is the sidereal Moon longitude at
// birth; birth is the civil instant the timeline starts from.
func Generate(moonLongitude float64, birth time.Time, minYears float64) ([]Period, error) {
	if moonLongitude < 0 || moonLongitude >= 360 {
		return nil, apperr.Input("moon longitude %f outside [0, 360)", moonLongitude)
	}

	nakIndex := int(moonLongitude / nakshatraSpan)
	if nakIndex > 26 {
		nakIndex = 26
	}
	startLord, err := zodiac.VimshottariLordOf(nakIndex)
	if err != nil {
		return nil, err
	}

	posInNak := moonLongitude - float64(nakIndex)*nakshatraSpan
	fractionElapsed := posInNak / nakshatraSpan

	lordIdx := indexOfLord(startLord)

	var periods []Period
	cursor := birth
	yearsEmitted := 0.0
	first := true

	for yearsEmitted < minYears {
		lord := zodiac.VimshottariLords[lordIdx%9]
		fullYears := yearsFor[lord]

		var durationYears float64
		if first {
			durationYears = fullYears * (1 - fractionElapsed)
			first = false
		} else {
			durationYears = fullYears
		}

		end := addYears(cursor, durationYears)
		sub := subPeriods(lord, cursor, end)

		periods = append(periods, Period{
			Lord:       lord,
			Start:      cursor,
			End:        end,
			SubPeriods: sub,
		})

		yearsEmitted += durationYears
		cursor = end
		lordIdx++
	}

	return periods, nil
}

// subPeriods allocates the nine Antardaśās of one Mahādaśā proportional
// to each lord's share of the 120-year cycle, starting the rotation
// from the Mahādaśā's own lord. Durations sum exactly to the parent's
// span regardless of whether that span is a full or partial (balance)
// Mahādaśā, since the nine yearsFor values sum to 120.
func subPeriods(mahaLord string, start, end time.Time) []Period {
	mahaYears := end.Sub(start).Hours() / (24 * 365.2425)
	startIdx := indexOfLord(mahaLord)

	subs := make([]Period, 0, 9)
	cursor := start
	for i := 0; i < 9; i++ {
		lord := zodiac.VimshottariLords[(startIdx+i)%9]
		length := mahaYears * yearsFor[lord] / totalCycleYears
		subEnd := addYears(cursor, length)
		if i == 8 {
			subEnd = end // close the last sub-period exactly on the parent's end
		}
		subs = append(subs, Period{Lord: lord, Start: cursor, End: subEnd})
		cursor = subEnd
	}
	return subs
}

func indexOfLord(lord string) int {
	for i, l := range zodiac.VimshottariLords {
		if l == lord {
			return i
		}
	}
	return 0
}

func addYears(t time.Time, years float64) time.Time {
	days := years * 365.2425
	wholeDays := int(days)
	frac := days - float64(wholeDays)
	return t.AddDate(0, 0, wholeDays).Add(time.Duration(frac * 24 * float64(time.Hour)))
}
