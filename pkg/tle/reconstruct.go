package tle

import (
	"fmt"
	"strings"
)

// Reconstruct renders rec back into column-exact TLE text (C6, inverse
// of C2): a 69-character line 1 and line 2, each with its checksum
// recomputed from the rendered body, and the name line prepended when
// rec.HasName. For a record produced by Parse without modification,
// reconstruct(parse(x)).line1 == x.line1 (spec.md §8 round-trip
// property).
func Reconstruct(rec ParsedRecord) (string, error) {
	line1, err := reconstructLine1(rec.Fields)
	if err != nil {
		return "", fmt.Errorf("tle: reconstruct line 1: %w", err)
	}
	line2, err := reconstructLine2(rec.Fields)
	if err != nil {
		return "", fmt.Errorf("tle: reconstruct line 2: %w", err)
	}

	var b strings.Builder
	if rec.HasName {
		b.WriteString(rec.Name)
		b.WriteString("\n")
	}
	b.WriteString(line1)
	b.WriteString("\n")
	b.WriteString(line2)
	return b.String(), nil
}

// rightAlign space-pads s on the left to width; s is truncated if
// already longer than width.
func rightAlign(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// leftAlign space-pads s on the right to width; s is truncated if
// already longer than width.
func leftAlign(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// zeroPad left-pads s with '0' to width, for the digit-only fields
// (eccentricity) that carry no sign.
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}

func reconstructLine1(f FieldMap) (string, error) {
	var b strings.Builder
	b.WriteString("1")
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldSatelliteNumber), 5))
	b.WriteString(leftAlign(f.Line1Field(FieldClassification), 1))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldIntlDesigYear), 2))
	b.WriteString(rightAlign(f.Line1Field(FieldIntlDesigLaunch), 3))
	b.WriteString(leftAlign(f.Line1Field(FieldIntlDesigPiece), 3))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldEpochYear), 2))
	b.WriteString(rightAlign(f.Line1Field(FieldEpochDay), 12))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldFirstDerivative), 10))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldSecondDerivative), 8))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldBStar), 8))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldEphemerisType), 1))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line1Field(FieldElementSetNumber), 4))

	body := b.String()
	if len(body) != checksumLength {
		return "", fmt.Errorf("reconstructed line 1 body is %d characters, want %d", len(body), checksumLength)
	}
	checksum := calculateChecksum(body)
	return body + fmt.Sprintf("%d", checksum), nil
}

func reconstructLine2(f FieldMap) (string, error) {
	var b strings.Builder
	b.WriteString("2")
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldSatelliteNumber), 5))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldInclination), 8))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldRightAscension), 8))
	b.WriteString(" ")
	b.WriteString(zeroPad(f.Line2Field(FieldEccentricity), 7))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldArgOfPerigee), 8))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldMeanAnomaly), 8))
	b.WriteString(" ")
	b.WriteString(rightAlign(f.Line2Field(FieldMeanMotion), 11))
	b.WriteString(rightAlign(f.Line2Field(FieldRevolutionNumber), 5))

	body := b.String()
	if len(body) != checksumLength {
		return "", fmt.Errorf("reconstructed line 2 body is %d characters, want %d", len(body), checksumLength)
	}
	checksum := calculateChecksum(body)
	return body + fmt.Sprintf("%d", checksum), nil
}
