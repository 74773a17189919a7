package shift

// OverlapHours returns the number of hours the query interval
// [queryStart, queryEnd) spends inside the reference window
// [rangeStart, rangeEnd). All values are decimal hours on a 24h clock;
// an overnight query extends past 24 (e.g. 22:00-02:00 is [22, 26)).
//
// A reference window with rangeStart > rangeEnd wraps midnight and is
// evaluated as [rangeStart, 24) plus [0, rangeEnd).
func OverlapHours(queryStart, queryEnd, rangeStart, rangeEnd float64) float64 {
	if rangeStart > rangeEnd {
		return OverlapHours(queryStart, queryEnd, rangeStart, 24) +
			OverlapHours(queryStart, queryEnd, 0, rangeEnd)
	}

	overlap := max(0, min(queryEnd, rangeEnd)-max(queryStart, rangeStart))
	if queryEnd > 24 {
		// The portion of the query past midnight falls on the next
		// clock day, so the window repeats 24 hours later.
		overlap += max(0, min(queryEnd, rangeEnd+24)-max(queryStart, rangeStart+24))
	}
	return overlap
}
