package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

func setInt(dst *int, value string, lo, hi int) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("not an integer: %q", value)
	}
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	*dst = n
	return nil
}

func setBool(dst *bool, value string) error {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "true", "1":
		*dst = true
		return nil
	case "false", "0":
		*dst = false
		return nil
	default:
		return fmt.Errorf("not a boolean: %q", value)
	}
}
