package utils

import (
	"strconv"
)

// StringToInt64 converts string to int64, returns 0 if error or negative.
func StringToInt64(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || i < 0 {
		return 0
	}
	return i
}
