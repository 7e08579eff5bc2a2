package filter

import "time"

// DateTimeLayout is the text layout of expiration timestamps as stored in the
// activity table ("YYYY-MM-DD HH:MM:SS", no zone suffix).
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatUnix renders epoch seconds in loc using DateTimeLayout. A nil loc means
// time.Local. The zone must be the one the expiration column was written in,
// otherwise every expiration comparison is shifted by the offset difference.
func FormatUnix(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(DateTimeLayout)
}
