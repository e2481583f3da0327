package ros

import "math"

const nsecPerSec = int64(1000000000)

// normalizeSecNSec folds nsec into [0, 1e9) and carries the rest into sec.
func normalizeSecNSec(sec int64, nsec int64) (int64, int64) {
	sec += nsec / nsecPerSec
	nsec %= nsecPerSec
	if nsec < 0 {
		nsec += nsecPerSec
		sec--
	}
	return sec, nsec
}

func normalizeTime(sec int64, nsec int64) (uint32, uint32) {
	sec, nsec = normalizeSecNSec(sec, nsec)
	if sec < 0 || sec > math.MaxUint32 {
		panic("ros: time is out of range")
	}
	return uint32(sec), uint32(nsec)
}

func normalizeDuration(sec int64, nsec int64) (int32, int32) {
	sec, nsec = normalizeSecNSec(sec, nsec)
	if sec < math.MinInt32 || sec > math.MaxInt32 {
		panic("ros: duration is out of range")
	}
	return int32(sec), int32(nsec)
}

func cmpInt64(lhs, rhs int64) int {
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	}
	return 0
}
