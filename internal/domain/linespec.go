package domain

import (
	"sort"
	"strconv"
	"strings"
)

// LineRange is an inclusive span of 0-based line indices.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether idx falls inside the range.
func (r LineRange) Contains(idx int) bool {
	return idx >= r.Start && idx <= r.End
}

// ParseLineSpec parses the value of a lines= selector into sorted,
// non-overlapping ranges of 0-based line indices. The value is a comma
// separated list whose items are 1-based line numbers or inclusive
// "start-end" ranges. Malformed items are reported and skipped; the rest are
// still returned. Ranges are never expanded, so their bounds may lie far
// past the end of any resource.
func ParseLineSpec(spec string) ([]LineRange, []error) {
	var (
		warnings []error
		ranges   []LineRange
	)

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			warnings = append(warnings, &ErrInvalidLineSpec{Token: token, Reason: "empty item"})
			continue
		}

		if !strings.Contains(token, "-") {
			n, err := parseLineNumber(token)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			ranges = append(ranges, LineRange{Start: n - 1, End: n - 1})
			continue
		}

		bounds := strings.Split(token, "-")
		if len(bounds) != 2 {
			warnings = append(warnings, &ErrInvalidLineSpec{Token: token, Reason: "range must have the form start-end"})
			continue
		}
		start, err := parseLineNumber(strings.TrimSpace(bounds[0]))
		if err != nil {
			warnings = append(warnings, &ErrInvalidLineSpec{Token: token, Reason: "bad range start"})
			continue
		}
		end, err := parseLineNumber(strings.TrimSpace(bounds[1]))
		if err != nil {
			warnings = append(warnings, &ErrInvalidLineSpec{Token: token, Reason: "bad range end"})
			continue
		}
		if start > end {
			warnings = append(warnings, &ErrInvalidLineSpec{Token: token, Reason: "range start is after range end"})
			continue
		}
		ranges = append(ranges, LineRange{Start: start - 1, End: end - 1})
	}

	return mergeRanges(ranges), warnings
}

// mergeRanges sorts ranges and joins the ones that overlap or touch.
func mergeRanges(ranges []LineRange) []LineRange {
	if len(ranges) == 0 {
		return []LineRange{}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	merged := []LineRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ErrInvalidLineSpec{Token: s, Reason: "not a number"}
	}
	if n < 1 {
		return 0, &ErrInvalidLineSpec{Token: s, Reason: "line numbers start at 1"}
	}
	return n, nil
}
