// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import "time"

// sbdfEpoch is the zero point DATETIME/DATE/TIME millisecond counts are
// measured from: midnight on January 1st, year 1, UTC.
var sbdfEpoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// sbdfEpochUnixMillis is sbdfEpoch as Unix milliseconds. The conversions
// below go through Unix milliseconds rather than time.Duration, which only
// spans about 292 years.
var sbdfEpochUnixMillis = sbdfEpoch.UnixMilli()

// millisToTime converts a DATETIME/DATE/TIME millisecond count into a
// time.Time anchored at sbdfEpoch. DATE values carry a zero time-of-day;
// TIME values carry the epoch's date; DATETIME carries both — callers pick
// the right ValueTypeID and the round trip through timeToMillis is exact.
func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms + sbdfEpochUnixMillis).UTC()
}

// timeToMillis is the inverse of millisToTime.
func timeToMillis(t time.Time) int64 {
	return t.UnixMilli() - sbdfEpochUnixMillis
}
