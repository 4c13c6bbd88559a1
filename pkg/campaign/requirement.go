package campaign

import (
	"strconv"
	"strings"
	"time"
)

// birthdayRequirement reads the birthday as a calendar date in its own location
// and compares it with now as given; the caller decides which zone "today" is in.
func birthdayRequirement(now time.Time, in Input) bool {
	bi, ok := in.(BirthdayInput)
	if !ok || bi.User.Birthday == nil {
		return false
	}
	bd := *bi.User.Birthday
	return bd.Month() == now.Month() && bd.Day() == now.Day()
}

func stampsRequirement(_ time.Time, in Input) bool {
	si, ok := in.(StampsInput)
	if !ok || len(si.Values) == 0 || si.Purchase == nil {
		return false
	}
	maxStamps, ok := ParseThreshold(si.Values[0])
	if !ok {
		return false
	}

	current := 0
	for _, p := range si.CustomerData.Purchases {
		if si.Campaign.Contains(p.CreatedAt) {
			current++
		}
	}
	// exact match: a customer already past the threshold never qualifies again
	return current+1 == maxStamps
}

// ParseThreshold parses a business-supplied count. Anything that is not a
// positive base-10 integer is rejected.
func ParseThreshold(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Contains reports whether t falls strictly inside the campaign window.
func (c Campaign) Contains(t time.Time) bool {
	if !t.After(c.Start) {
		return false
	}
	return c.End == nil || t.Before(*c.End)
}
