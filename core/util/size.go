package util

import (
	"fmt"
)

// util/RamUsageEstimator.java

const (
	ONE_KB = int64(1024)
	ONE_MB = ONE_KB * ONE_KB
	ONE_GB = ONE_KB * ONE_MB
	ONE_TB = ONE_KB * ONE_GB
)

/*
Returns size in human-readable units (TB, GB, MB, KB or bytes), in
base-1024 with one decimal place, rounding half-up. Values below one
KB are rendered as whole bytes.
*/
func HumanReadableUnits(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	switch {
	case bytes/ONE_TB > 0:
		return scaled(bytes, ONE_TB, "TB")
	case bytes/ONE_GB > 0:
		return scaled(bytes, ONE_GB, "GB")
	case bytes/ONE_MB > 0:
		return scaled(bytes, ONE_MB, "MB")
	case bytes/ONE_KB > 0:
		return scaled(bytes, ONE_KB, "KB")
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// tenths = round-half-up(rem*10/unit), kept in integers
func scaled(bytes, unit int64, suffix string) string {
	whole := bytes / unit
	rem := bytes % unit
	tenths := (rem*20 + unit) / (2 * unit)
	if tenths == 10 {
		whole, tenths = whole+1, 0
	}
	return fmt.Sprintf("%d.%d %v", whole, tenths, suffix)
}
