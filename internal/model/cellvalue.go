package model

import (
	"regexp"
	"strconv"
	"strings"
)

// CellValue wraps a raw spreadsheet cell so callers get explicit, typed
// conversions instead of duck-typed values. Conversions report failure
// through their return values; nothing here panics on malformed input.
type CellValue struct {
	raw string
}

// Cell builds a CellValue from the string form excelize returns for a cell.
func Cell(raw string) CellValue {
	return CellValue{raw: raw}
}

// AsText returns the trimmed cell content.
func (c CellValue) AsText() string {
	return strings.TrimSpace(c.raw)
}

// IsEmpty reports whether the cell holds no meaningful content.
func (c CellValue) IsEmpty() bool {
	return c.AsText() == ""
}

// AsNumber parses the cell as a float. Whitespace and non-breaking spaces
// are stripped and a comma is accepted as the decimal separator. The second
// return value is false when the cell cannot be parsed.
func (c CellValue) AsNumber() (float64, bool) {
	s := c.AsText()
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AsLooseNumber parses the leading numeric token of the cell, dropping any
// trailing unit text ("12,5 szt." -> 12.5). Returns 0 when nothing numeric
// remains; used for rate cells where a missing value legitimately means 0.
func (c CellValue) AsLooseNumber() float64 {
	s := c.AsText()
	if s == "" {
		return 0
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	var b strings.Builder
	for _, ch := range fields[0] {
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' {
			b.WriteRune(ch)
		}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(b.String(), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

var (
	durHours   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)h`)
	durMinutes = regexp.MustCompile(`(\d+(?:[.,]\d+)?)(?:m|min)`)
	durSeconds = regexp.MustCompile(`(\d+(?:[.,]\d+)?)s`)
)

// AsDuration converts the cell to hours. Accepted forms:
//
//	"1:26:21", "1:26"          colon notation
//	"1h26min21s", "86min"      suffix notation, any subset of units
//	"5400"                     bare number, treated as seconds
//
// Returns 0 when the cell cannot be parsed at all.
func (c CellValue) AsDuration() float64 {
	s := strings.ToLower(strings.ReplaceAll(c.AsText(), " ", ""))
	if s == "" {
		return 0
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		toF := func(x string) float64 {
			v, err := strconv.ParseFloat(strings.ReplaceAll(x, ",", "."), 64)
			if err != nil {
				return 0
			}
			return v
		}
		switch len(parts) {
		case 3:
			return toF(parts[0]) + toF(parts[1])/60 + toF(parts[2])/3600
		case 2:
			return toF(parts[0]) + toF(parts[1])/60
		default:
			return toF(parts[0])
		}
	}

	take := func(re *regexp.Regexp) float64 {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return 0
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			return 0
		}
		return v
	}

	h := take(durHours)
	m := take(durMinutes)
	sec := take(durSeconds)
	if h == 0 && m == 0 && sec == 0 {
		// Bare number: seconds.
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0
		}
		return v / 3600
	}
	return h + m/60 + sec/3600
}
