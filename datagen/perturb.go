package datagen

import (
	"fmt"
	"strings"
)

var streetAbbreviations = map[string]string{
	"Street": "St.",
	"Avenue": "Ave.",
	"Road":   "Rd.",
	"Drive":  "Dr.",
}

var williamNicknames = []string{"Bill", "Will", "Billy"}

// perturbName applies one of the variations real bureau and county files
// show for the same person: middle initials, initial-only first names,
// "Last, First" ordering, a vowel typo, a nickname, or no change at all.
func (g gen) perturbName(fullName string) string {
	first, last, ok := strings.Cut(fullName, " ")
	if !ok {
		return fullName
	}
	switch g.r.Intn(6) {
	case 0:
		return fmt.Sprintf("%s %c. %s", first, rune('A'+g.r.Intn(26)), last)
	case 1:
		return fmt.Sprintf("%c. %s", []rune(first)[0], last)
	case 2:
		return fmt.Sprintf("%s, %s", last, first)
	case 3:
		r := []rune(first)
		if len(r) < 2 {
			return fullName
		}
		return string(r[:len(r)-2]) + g.vowel() + string(r[len(r)-1]) + " " + last
	case 4:
		if first == "William" {
			return g.pick(williamNicknames) + " " + last
		}
		return fullName
	default:
		return fullName
	}
}

// perturbAddress mangles a two-line postal address the way it drifts
// across filings: street type abbreviated, ZIP dropped, a typo in the
// street, or left alone. The result is always flattened to one line.
func (g gen) perturbAddress(fullAddress string) string {
	street, cityStateZip, ok := strings.Cut(fullAddress, "\n")
	if !ok {
		return strings.ReplaceAll(fullAddress, "\n", ", ")
	}
	full := streetTypes[g.r.Intn(len(streetTypes))]
	abbreviated := strings.Replace(street, full, streetAbbreviations[full], 1)

	var out string
	switch g.r.Intn(4) {
	case 0:
		out = abbreviated
	case 1:
		if i := strings.LastIndex(cityStateZip, " "); i > 0 {
			out = abbreviated + "\n" + cityStateZip[:i]
		} else {
			out = abbreviated + "\n" + cityStateZip
		}
	case 2:
		r := []rune(abbreviated)
		if len(r) >= 5 {
			out = string(r[:len(r)-5]) + g.vowel() + string(r[len(r)-4:]) + "\n" + cityStateZip
		} else {
			out = abbreviated + "\n" + cityStateZip
		}
	default:
		out = fullAddress
	}
	return strings.ReplaceAll(out, "\n", ", ")
}
