package tle

import "fmt"

// ParsedRecord is the structural result of Parse (C2): the canonical
// lines plus the raw, column-sliced FieldMap. It carries no decoded
// numeric values; call Normalize for those.
type ParsedRecord struct {
	Name     string
	HasName  bool
	Line1    string
	Line2    string
	Comments []string
	Fields   FieldMap
}

// Parse validates text against opts and, if it is valid, returns its
// ParsedRecord. Parse is a convenience wrapper over Validate: it
// returns a *ValidationError carrying every collected Issue when the
// record is invalid, rather than stopping at the first problem
// (spec.md §4.3, §7).
func Parse(text string, opts Options) (ParsedRecord, error) {
	report, err := Validate(text, opts)
	if err != nil {
		return ParsedRecord{}, err
	}
	if !report.IsValid {
		return ParsedRecord{}, &ValidationError{Errors: report.Errors, Warnings: report.Warnings}
	}
	return ParsedRecord{
		Name:     report.Lines.Name,
		HasName:  report.Lines.HasName,
		Line1:    report.Lines.Line1,
		Line2:    report.Lines.Line2,
		Comments: report.Lines.Comments,
		Fields:   report.Fields,
	}, nil
}

// CalculateChecksum computes the expected modulo-10 checksum digit for
// a 69-character TLE line.
func CalculateChecksum(line string) (int, error) {
	if len(line) < checksumLength {
		return 0, fmt.Errorf("tle: line too short to checksum: got %d characters, want at least %d", len(line), checksumLength)
	}
	return calculateChecksum(line), nil
}

// ValidateChecksum reports whether line's trailing checksum digit
// matches its computed value. line must be exactly TLELineLength
// characters.
func ValidateChecksum(line string) (ChecksumResult, error) {
	if len(line) != TLELineLength {
		return ChecksumResult{}, fmt.Errorf("tle: line must be %d characters, got %d", TLELineLength, len(line))
	}
	return validateChecksumLine(line), nil
}

// ValidateLineStructure checks that line has the expected length and
// leading line-number prefix, independent of the rest of the pipeline.
func ValidateLineStructure(line string, expectedLineNumber Line) error {
	if len(line) != TLELineLength {
		return &FormatError{
			Code:    CodeInvalidLineLength,
			Message: fmt.Sprintf("line must be exactly %d characters, got %d", TLELineLength, len(line)),
		}
	}
	want := byte('0' + expectedLineNumber)
	if line[0] != want {
		return &FormatError{
			Code:    CodeInvalidLineNumber,
			Message: fmt.Sprintf("line must start with %q, got %q", string(want), string(line[0])),
		}
	}
	return nil
}
