package misfit

import (
	"strconv"
	"strings"
)

// NaturalLess orders labels so that embedded numbers compare by value: PROD2 < PROD10.
func NaturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)
		if ca != cb {
			da, db := isDigit(ca[0]), isDigit(cb[0])
			switch {
			case da && db:
				na, nb := strings.TrimLeft(ca, "0"), strings.TrimLeft(cb, "0")
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				if na != nb {
					return na < nb
				}
				// equal value, fewer leading zeros first
				return len(ca) < len(cb)
			case da != db:
				return da
			default:
				return ca < cb
			}
		}
		a, b = restA, restB
	}
	return len(a) < len(b)
}

func nextChunk(s string) (chunk, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ModelLabel formats a model index as a matrix label
func ModelLabel(model int) string {
	return strconv.Itoa(model)
}
