// Package houses assigns Whole-Sign houses. It is deliberately the
// simplest package in the core: no cusp arithmetic, because the core
// supports exactly one house system.
package houses

import "vedicengine/internal/zodiac"

// House is one entry of the twelve-house list emitted for house-bearing
// charts (§6).
type House struct {
	House     int    `json:"house"`
	SignIndex int    `json:"sign_index"`
	Sign      string `json:"sign"`
	Lord      string `json:"lord"`
}

// BuildTwelve returns the ordered twelve-house list for a chart whose
// ascendant falls in ascendantSignIndex.
func BuildTwelve(ascendantSignIndex int) []House {
	list := make([]House, 12)
	for h := 1; h <= 12; h++ {
		signIndex := (ascendantSignIndex + h - 1) % 12
		list[h-1] = House{
			House:     h,
			SignIndex: signIndex,
			Sign:      zodiac.SignName(signIndex),
			Lord:      zodiac.SignLord(signIndex),
		}
	}
	return list
}

// WholeSign returns the 1..12 house of a body given the ascendant's sign
// index and the body's own sign index, per the invariant that holds in
// D1 and every divisional chart alike:
// house = ((body.sign_index - ascendant.sign_index + 12) mod 12) + 1.
func WholeSign(ascendantSignIndex, bodySignIndex int) int {
	return (bodySignIndex-ascendantSignIndex+12)%12 + 1
}
