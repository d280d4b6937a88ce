package workbook

import (
	"strings"

	"github.com/piwi3910/laserquote/internal/model"
)

// ParseNumber converts raw cell content to a float, accepting a comma as the
// decimal separator. The second return value is false when unparsable.
func ParseNumber(raw string) (float64, bool) {
	return model.Cell(raw).AsNumber()
}

// ParseDurationToHours converts colon or suffix duration notation to hours.
// Bare numbers are seconds. Returns 0 on total failure.
func ParseDurationToHours(raw string) float64 {
	return model.Cell(raw).AsDuration()
}

// NormalizeCode upper-cases and trims a material or gas code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// gasSynonyms maps localized and transliterated gas names to their keys.
var gasSynonyms = map[string]model.Gas{
	"OXYGEN":   model.GasOxygen,
	"TLEN":     model.GasOxygen,
	"氧气":       model.GasOxygen,
	"O":        model.GasOxygen,
	"NITROGEN": model.GasNitrogen,
	"AZOT":     model.GasNitrogen,
	"氮气":       model.GasNitrogen,
	"N":        model.GasNitrogen,
}

// MapGas resolves a raw gas name to its key. GasUnknown means the value is
// unsupported, which the caller must treat as fatal for the job.
func MapGas(raw string) model.Gas {
	if g, ok := gasSynonyms[NormalizeCode(raw)]; ok {
		return g
	}
	return model.GasUnknown
}

// ParsePlateSize converts a "<W>*<H>" or "<W>x<H>" millimeter plate size to
// square meters. Returns 0 when the cell is unparsable.
func ParsePlateSize(raw string) float64 {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "*", "x"))
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0
	}
	w, okW := ParseNumber(parts[0])
	h, okH := ParseNumber(parts[1])
	if !okW || !okH || w <= 0 || h <= 0 {
		return 0
	}
	return w * h / 1e6
}
