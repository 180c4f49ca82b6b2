package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// round2 matches how ledger amounts are stored: two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var (
	firstNames = []string{
		"William", "James", "John", "Robert", "Michael", "David", "Richard",
		"Thomas", "Daniel", "Matthew", "Anthony", "Mark", "Steven", "Andrew",
		"Maria", "Ann", "Patricia", "Jennifer", "Linda", "Elizabeth", "Susan",
		"Jessica", "Sarah", "Karen", "Nancy", "Margaret", "Sandra", "Emily",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Chen", "Nguyen", "Kim", "Patel", "Walker", "Hall", "Young",
	}
	streetNames = []string{
		"Maple", "Oak", "Cedar", "Pine", "Elm", "Willow", "Birch", "Walnut",
		"Main", "Park", "Lake", "Hill", "River", "Sunset", "Highland",
		"Washington", "Jefferson", "Lincoln", "Madison", "Franklin",
	}
	streetTypes = []string{"Street", "Avenue", "Road", "Drive"}
	cities      = []string{
		"Springfield", "Riverton", "Fairview", "Georgetown", "Clinton",
		"Salem", "Madison", "Arlington", "Ashland", "Burlington", "Clayton",
		"Dayton", "Franklin", "Greenville", "Kingston", "Milton",
	}
	states = []string{
		"AL", "AZ", "CA", "CO", "FL", "GA", "IL", "IN", "KY", "MA", "MI",
		"MN", "MO", "NC", "NJ", "NY", "OH", "OR", "PA", "TN", "TX", "VA",
		"WA", "WI",
	}
	companySuffixes = []string{"Group", "LLC", "Inc", "Ltd", "Industries", "Holdings", "Partners", "and Sons"}
)

// identity is the ground truth for one person; every dataset row for that
// person derives from it.
type identity struct {
	govID   string
	name    string
	dob     time.Time
	address string
}

// gen wraps the single seeded source every draw goes through, so one seed
// reproduces a whole run.
type gen struct {
	r *rand.Rand
}

func (g gen) pick(options []string) string {
	return options[g.r.Intn(len(options))]
}

func (g gen) uniform(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// intBetween draws from [lo, hi], both ends included.
func (g gen) intBetween(lo, hi int) int {
	return lo + g.r.Intn(hi-lo+1)
}

func (g gen) vowel() string {
	return string("aeiou"[g.r.Intn(5)])
}

// uuid draws v4 ids from the seeded source rather than crypto/rand, which
// keeps document ids reproducible per seed.
func (g gen) uuid() string {
	u, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		return uuid.New().String()
	}
	return u.String()
}

func (g gen) ssn() string {
	return fmt.Sprintf("%03d-%02d-%04d", 1+g.r.Intn(898), 1+g.r.Intn(99), 1+g.r.Intn(9999))
}

func (g gen) fullName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

// dateOfBirth draws a day placing the person between minAge and maxAge
// years old as of now.
func (g gen) dateOfBirth(now time.Time, minAge, maxAge int) time.Time {
	youngest := now.AddDate(-minAge, 0, 0)
	oldest := now.AddDate(-maxAge, 0, 0)
	days := int(youngest.Sub(oldest).Hours() / 24)
	d := oldest.AddDate(0, 0, g.r.Intn(days+1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// address produces the two-line postal form; callers flatten the newline
// when a dataset stores single-line addresses.
func (g gen) address() string {
	street := fmt.Sprintf("%d %s %s", 100+g.r.Intn(9900), g.pick(streetNames), g.pick(streetTypes))
	cityLine := fmt.Sprintf("%s, %s %05d", g.pick(cities), g.pick(states), 10000+g.r.Intn(89999))
	return street + "\n" + cityLine
}

func (g gen) company() string {
	switch g.r.Intn(3) {
	case 0:
		return g.pick(lastNames) + " " + g.pick(companySuffixes)
	case 1:
		return g.pick(lastNames) + "-" + g.pick(lastNames) + " " + g.pick(companySuffixes)
	default:
		return fmt.Sprintf("%s, %s and %s", g.pick(lastNames), g.pick(lastNames), g.pick(lastNames))
	}
}
