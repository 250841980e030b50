package stake

import "time"

// Timestamp is chain time, expressed in microseconds since the unix epoch.
// All epoch arithmetic (intervals, reconfiguration deadlines) is carried out
// in microseconds.
type Timestamp uint64

// TimestampFromTime converts a wall-clock time to chain time.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMicro())
}

// Time converts chain time back to a wall-clock time.
func (ts Timestamp) Time() time.Time {
	return time.UnixMicro(int64(ts))
}

// Add offsets the timestamp by a duration, saturating at zero for negative
// results.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	micros := d.Microseconds()
	if micros < 0 && Timestamp(-micros) > ts {
		return 0
	}
	return Timestamp(int64(ts) + micros)
}

// AddMicros offsets the timestamp by a microsecond count.
func (ts Timestamp) AddMicros(micros uint64) Timestamp {
	return ts + Timestamp(micros)
}
