// Package yoga detects classical planetary combinations over a built D1
// chart. Every rule is a small declarative predicate; Detect just runs
// the table and collects the matches. The engine carries no
// interpretation of its own.
package yoga

import (
	"fmt"

	"vedicengine/internal/chart"
	"vedicengine/internal/dignity"
)

// Category groups a yoga by the kind of combination that produces it.
type Category string

const (
	CategoryPlanetary   Category = "planetary"
	CategoryHouseBased  Category = "house_based"
	CategoryMahapurusha Category = "mahapurusha"
	CategoryCombination Category = "combination"
	CategoryRaja        Category = "raja"
	CategoryDosha       Category = "dosha"
)

var kendraHouses = map[int]bool{1: true, 4: true, 7: true, 10: true}
var trikonaHouses = map[int]bool{1: true, 5: true, 9: true}

// Yoga is one detected combination.
type Yoga struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Explanation string   `json:"explanation"`
}

type rule struct {
	name     string
	category Category
	test     func(c *chart.Chart) (bool, string)
}

// mahapurushaYogas maps each Mahāpuruṣa yoga to the graha whose own-sign
// or exalted placement in a Kendra produces it.
var mahapurushaYogas = []struct {
	name   string
	planet string
}{
	{"Ruchaka Yoga", "Mars"},
	{"Bhadra Yoga", "Mercury"},
	{"Hamsa Yoga", "Jupiter"},
	{"Malavya Yoga", "Venus"},
	{"Sasa Yoga", "Saturn"},
}

func rules() []rule {
	var rs []rule

	for _, my := range mahapurushaYogas {
		my := my
		rs = append(rs, rule{
			name:     my.name,
			category: CategoryMahapurusha,
			test: func(c *chart.Chart) (bool, string) {
				b, ok := c.Planets[my.planet]
				if !ok || !kendraHouses[b.House] {
					return false, ""
				}
				if !dignity.IsOwnOrExalted(my.planet, b.SignIndex) {
					return false, ""
				}
				return true, fmt.Sprintf("%s occupies its own or exaltation sign in house %d (a Kendra)", my.planet, b.House)
			},
		})
	}

	rs = append(rs,
		rule{
			name:     "Gajakesari Yoga",
			category: CategoryCombination,
			test: func(c *chart.Chart) (bool, string) {
				moon, ok1 := c.Planets["Moon"]
				jupiter, ok2 := c.Planets["Jupiter"]
				if !ok1 || !ok2 {
					return false, ""
				}
				dist := ((jupiter.House-moon.House)%12+12)%12 + 1
				if dist == 1 || dist == 4 || dist == 7 || dist == 10 {
					return true, "Jupiter stands in a Kendra position counted from the Moon"
				}
				return false, ""
			},
		},
		rule{
			name:     "Budhaditya Yoga",
			category: CategoryCombination,
			test: func(c *chart.Chart) (bool, string) {
				sun, ok1 := c.Planets["Sun"]
				mercury, ok2 := c.Planets["Mercury"]
				if !ok1 || !ok2 {
					return false, ""
				}
				if sun.House == mercury.House {
					return true, fmt.Sprintf("Sun and Mercury conjoin in house %d", sun.House)
				}
				return false, ""
			},
		},
		rule{
			name:     "Chandra-Mangal Yoga",
			category: CategoryCombination,
			test: func(c *chart.Chart) (bool, string) {
				moon, ok1 := c.Planets["Moon"]
				mars, ok2 := c.Planets["Mars"]
				if !ok1 || !ok2 {
					return false, ""
				}
				if moon.House == mars.House {
					return true, fmt.Sprintf("Moon and Mars conjoin in house %d", moon.House)
				}
				return false, ""
			},
		},
		rule{
			name:     "Kemadruma Dosha",
			category: CategoryDosha,
			test: func(c *chart.Chart) (bool, string) {
				moon, ok := c.Planets["Moon"]
				if !ok {
					return false, ""
				}
				prev := moon.House - 1
				if prev < 1 {
					prev = 12
				}
				next := moon.House + 1
				if next > 12 {
					next = 1
				}
				for name, b := range c.Planets {
					if name == "Moon" {
						continue
					}
					if b.House == moon.House || b.House == prev || b.House == next {
						return false, ""
					}
				}
				return true, "no planet conjoins, precedes, or follows the Moon by house"
			},
		},
		rule{
			name:     "Raja Yoga (Kendra-Trikona Lord Conjunction)",
			category: CategoryRaja,
			test: func(c *chart.Chart) (bool, string) {
				lords := lordsOfHouses(c)
				for kh := range kendraHouses {
					for th := range trikonaHouses {
						if kh == th {
							continue
						}
						kLord, ok1 := lords[kh]
						tLord, ok2 := lords[th]
						if !ok1 || !ok2 || kLord == tLord {
							continue
						}
						kb, ok1 := c.Planets[kLord]
						tb, ok2 := c.Planets[tLord]
						if !ok1 || !ok2 {
							continue
						}
						if kb.SignIndex == tb.SignIndex {
							return true, fmt.Sprintf("lord of Kendra house %d (%s) conjoins lord of Trikona house %d (%s)", kh, kLord, th, tLord)
						}
					}
				}
				return false, ""
			},
		},
	)

	return rs
}

// lordsOfHouses maps each house number to the name of its ruling graha,
// read off the chart's already-computed house list.
func lordsOfHouses(c *chart.Chart) map[int]string {
	out := make(map[int]string, len(c.Houses))
	for _, h := range c.Houses {
		out[h.House] = h.Lord
	}
	return out
}

// Detect evaluates every rule against c and returns the matches.
func Detect(c *chart.Chart) []Yoga {
	var out []Yoga
	for _, r := range rules() {
		if matched, explanation := r.test(c); matched {
			out = append(out, Yoga{Name: r.name, Category: r.category, Explanation: explanation})
		}
	}
	return out
}
