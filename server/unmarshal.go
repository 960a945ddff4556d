package server

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var errTrailingData = errors.New("invalid format: trailing data after points list")

// unmarshalPointsListFast parses a JSON array of [x, y] pairs without
// reflection. Extra coordinates of a pair are ignored like encoding/json
// does for fixed size arrays.
func unmarshalPointsListFast(data []byte, result *[][2]float64) error {
	n := len(data)
	*result = slices.Grow(*result, n/16) // n/16 is a heuristic

	i := skipSpace(data, 0)
	if i >= n || data[i] != '[' {
		return fmt.Errorf("invalid format: expected '['")
	}
	i = skipSpace(data, i+1)

	if i < n && data[i] == ']' {
		return checkTrailing(data, i+1)
	}

	for {
		if i >= n || data[i] != '[' {
			return fmt.Errorf("invalid format: expected '[' for point")
		}
		i++

		var point [2]float64
		for j := range 2 {
			i = skipSpace(data, i)
			start := i
			for i < n && isNumberByte(data[i]) {
				i++
			}
			if start == i {
				return fmt.Errorf("invalid format: expected number at %d", start)
			}
			num, err := strconv.ParseFloat(string(data[start:i]), 64)
			if err != nil {
				return fmt.Errorf("invalid number: %v", err)
			}
			point[j] = num

			i = skipSpace(data, i)
			if j == 0 {
				if i >= n || data[i] != ',' {
					return fmt.Errorf("invalid format: expected ',' between coordinates")
				}
				i++
			}
		}

		// skip extra coordinates
		for i < n && data[i] != ']' {
			i++
		}
		if i >= n {
			return fmt.Errorf("invalid format: expected ']' at end of point")
		}
		i = skipSpace(data, i+1)

		*result = append(*result, point)

		if i >= n {
			return fmt.Errorf("invalid format: unterminated points list")
		}
		switch data[i] {
		case ',':
			i = skipSpace(data, i+1)
		case ']':
			return checkTrailing(data, i+1)
		default:
			return fmt.Errorf("invalid format: expected ',' or ']' after point")
		}
	}
}

func skipSpace(data []byte, i int) int {
	for i < len(data) && (data[i] == ' ' || data[i] == '\n' || data[i] == '\t' || data[i] == '\r') {
		i++
	}
	return i
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func checkTrailing(data []byte, i int) error {
	if skipSpace(data, i) != len(data) {
		return errTrailingData
	}
	return nil
}
