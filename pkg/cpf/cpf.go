// Package cpf validates Brazilian individual taxpayer numbers.
package cpf

import "strings"

// Normalize strips the usual punctuation ("123.456.789-09") and returns the
// digits only. Any other character is kept so that Valid rejects it.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// Valid reports whether s is a well-formed CPF with correct check digits.
// Sequences of a single repeated digit are rejected.
func Valid(s string) bool {
	d := Normalize(s)
	if len(d) != 11 {
		return false
	}
	digits := make([]int, 11)
	same := true
	for i := 0; i < 11; i++ {
		c := d[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
		if digits[i] != digits[0] {
			same = false
		}
	}
	if same {
		return false
	}
	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

func checkDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
