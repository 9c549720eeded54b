package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that also accepts numeric strings. SQL SUM() results reach the
// wire as decimal strings ("125") depending on the backend driver.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", string(data), err)
	}
	*n = Number(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

// Float returns the value as float64
func (n Number) Float() float64 {
	return float64(n)
}
