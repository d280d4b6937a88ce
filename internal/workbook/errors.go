package workbook

import "fmt"

// MissingSheetError reports a workbook lacking one of the required sheets.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet %q not found", e.Sheet)
}

// MissingAnchorError reports that a required anchor substring was never
// found while scanning a sheet.
type MissingAnchorError struct {
	Sheet  string
	Anchor string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("anchor %q not found in sheet %q", e.Anchor, e.Sheet)
}

// UnsupportedGasError reports a gas cell that matches no known synonym.
type UnsupportedGasError struct {
	Raw string
}

func (e *UnsupportedGasError) Error() string {
	return fmt.Sprintf("unsupported gas type %q", e.Raw)
}

// MissingFieldError reports a required job header cell with no usable value.
type MissingFieldError struct {
	Cell  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: no %s value", e.Cell, e.Field)
}
