package points

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/chewy/internal/domain"
)

// annotationPattern matches "[2]", "[2->3]" and "[0.5 -> 1]" at the start of a name.
var annotationPattern = regexp.MustCompile(`^\[(\d+\.*\d*) *(->)? *(\d+\.*\d*)?\]`)

// Parse extracts the point annotation from a card, checklist or item name.
//
//	[1] asdasd      => {Start: 1, End: 1}
//	[2->1] asdasd   => {Start: 2, End: 1}
//	* [0.5] asdasd  => {Start: 0.5, End: 0.5, Unplanned: true}
//
// The second return value is false when the name carries no annotation.
func Parse(name string) (domain.PointAnnotation, bool) {
	name = strings.TrimSpace(name)

	unplanned := false
	if strings.HasPrefix(name, "*") {
		unplanned = true
		name = strings.TrimSpace(name[1:])
	}

	match := annotationPattern.FindStringSubmatch(name)
	if match == nil {
		return domain.PointAnnotation{}, false
	}

	start, _ := parseNumber(match[1])
	end := start
	if match[3] != "" {
		if v, ok := parseNumber(match[3]); ok {
			end = v
		}
	}

	return domain.PointAnnotation{Start: start, End: end, Unplanned: unplanned}, true
}

// parseNumber reads a decimal the way the pattern admits it. A run of dots
// ends the number, so "1..5" reads as 1.
func parseNumber(s string) (float64, bool) {
	if i := strings.Index(s, ".."); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
