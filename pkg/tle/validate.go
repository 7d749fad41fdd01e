package tle

import (
	"strconv"
	"strings"
	"time"
)

// ValidationReport is the non-throwing result of Validate (spec.md §3, §7).
type ValidationReport struct {
	IsValid  bool
	Errors   []Issue
	Warnings []Issue

	Fields FieldMap // nil if layers 1-3 (input, line count, line length) failed
	Lines  CanonicalLines
}

// classifySeverity centralizes the strict/permissive downgrade rule
// (spec.md §4.3.3, §9 "Source's warnings-as-errors behaviour ..."):
// only the listed layer 5/6/7/8 codes ever downgrade, and only in
// permissive mode. Layers 1-4 are never passed to this function.
func classifySeverity(code ErrorCode, mode Mode) Severity {
	if mode != ModePermissive {
		return SeverityError
	}
	switch code {
	case CodeChecksumMismatch, CodeSatelliteNumberMismatch, CodeInvalidClassification, CodeValueOutOfRange:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Validate runs the full layered validation pipeline (C3) over raw TLE
// text and reports every violation found; it never aborts at the
// first error within a layer (spec.md §4.3, testable property 7). It
// only returns a non-nil error when opts itself fails validation or
// for the hard precondition failure (empty input); everything else is
// reported inside the returned report.
func Validate(text string, opts Options) (ValidationReport, error) {
	opts, err := opts.normalize()
	if err != nil {
		return ValidationReport{}, err
	}

	var report ValidationReport

	// Layer 1: emptiness.
	if strings.TrimSpace(text) == "" {
		return ValidationReport{}, &FormatError{
			Code:    CodeEmptyInput,
			Message: "input is empty",
		}
	}

	// Layer 2: canonicalize + line count.
	cl, canonIssues := canonicalize(text)
	if !opts.IncludeComments {
		cl.Comments = nil
	}
	report.Lines = cl
	for _, iss := range canonIssues {
		appendIssue(&report, iss, opts)
	}
	if hasError(canonIssues) {
		report.IsValid = false
		return report, nil
	}

	// Layer 3: line length.
	lengthOK := true
	for _, ln := range []struct {
		line Line
		text string
	}{{Line1, cl.Line1}, {Line2, cl.Line2}} {
		if len(ln.text) != TLELineLength {
			lengthOK = false
			appendIssue(&report, Issue{
				Code:     CodeInvalidLineLength,
				Severity: SeverityError,
				Message:  "line must be exactly 69 characters",
				Line:     ln.line,
				Expected: TLELineLength,
				Actual:   len(ln.text),
				Position: -1,
			}, opts)
		}
	}
	if !lengthOK {
		report.IsValid = false
		return report, nil
	}

	// Layer 4: line-number prefix. Safe to extract now that both
	// lines are known to be exactly 69 characters.
	fields := extractFields(cl.Line1, cl.Line2)
	report.Fields = fields

	prefixOK := true
	if cl.Line1[0] != '1' {
		prefixOK = false
		appendIssue(&report, Issue{
			Code:     CodeInvalidLineNumber,
			Severity: SeverityError,
			Message:  "line 1 must start with '1'",
			Line:     Line1,
			Expected: "1",
			Actual:   string(cl.Line1[0]),
			Position: 0,
		}, opts)
	}
	if cl.Line2[0] != '2' {
		prefixOK = false
		appendIssue(&report, Issue{
			Code:     CodeInvalidLineNumber,
			Severity: SeverityError,
			Message:  "line 2 must start with '2'",
			Line:     Line2,
			Expected: "2",
			Actual:   string(cl.Line2[0]),
			Position: 0,
		}, opts)
	}
	if !prefixOK {
		report.IsValid = false
		return report, nil
	}

	// opts.Validate gates everything past structure (layers 1-4): with
	// it off, Validate only confirms the record is column-shaped and
	// skips all content checks, so a structurally sound record is
	// always reported valid (spec.md §4.7 "validate: bool").
	if !opts.Validate {
		report.IsValid = true
		return report, nil
	}

	// Layer 5: checksum.
	if opts.StrictChecksums {
		validateChecksumLayer(&report, cl, opts)
	}

	// Layer 6: cross-line consistency.
	validateSatelliteNumber(&report, fields, opts)

	// Layer 7: classification.
	validateClassification(&report, fields, opts)

	// Layer 8: field syntax & numeric ranges.
	if opts.ValidateRanges {
		validateRanges(&report, fields, opts)
	}

	// Layer 9: semantic warnings (never errors).
	validateSemanticWarnings(&report, fields, opts)

	report.IsValid = !hasError(report.Errors)
	return report, nil
}

func appendIssue(report *ValidationReport, iss Issue, opts Options) {
	if iss.Severity == SeverityError {
		report.Errors = append(report.Errors, iss)
		return
	}
	if opts.IncludeWarnings {
		report.Warnings = append(report.Warnings, iss)
	}
}

func hasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateChecksumLayer(report *ValidationReport, cl CanonicalLines, opts Options) {
	for _, ln := range []struct {
		line Line
		text string
	}{{Line1, cl.Line1}, {Line2, cl.Line2}} {
		res := validateChecksumLine(ln.text)
		if res.Err != nil {
			iss := res.Err.(Issue)
			iss.Line = ln.line
			appendIssue(report, iss, opts)
			continue
		}
		if !res.Valid {
			sev := classifySeverity(CodeChecksumMismatch, opts.Mode)
			appendIssue(report, Issue{
				Code:     CodeChecksumMismatch,
				Severity: sev,
				Message:  "checksum does not match computed value",
				Line:     ln.line,
				Expected: res.Expected,
				Actual:   res.Actual,
				Position: TLELineLength - 1,
			}, opts)
		}
	}
}

func validateSatelliteNumber(report *ValidationReport, fields FieldMap, opts Options) {
	s1 := fields[Line1][FieldSatelliteNumber]
	if !isAllDigits(s1) {
		appendIssue(report, Issue{
			Code:     CodeInvalidSatelliteNumber,
			Severity: SeverityError,
			Message:  "satellite number must be all digits",
			Line:     Line1,
			Field:    FieldSatelliteNumber,
			Actual:   s1,
		}, opts)
	}

	s2 := fields[Line2][FieldSatelliteNumber]
	if !isAllDigits(s2) {
		appendIssue(report, Issue{
			Code:     CodeInvalidSatelliteNumber,
			Severity: SeverityError,
			Message:  "satellite number must be all digits",
			Line:     Line2,
			Field:    FieldSatelliteNumber,
			Actual:   s2,
		}, opts)
	}

	if isAllDigits(s1) && isAllDigits(s2) && s1 != s2 {
		sev := classifySeverity(CodeSatelliteNumberMismatch, opts.Mode)
		appendIssue(report, Issue{
			Code:     CodeSatelliteNumberMismatch,
			Severity: sev,
			Message:  "satellite number differs between line 1 and line 2",
			Expected: s1,
			Actual:   s2,
		}, opts)
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateClassification(report *ValidationReport, fields FieldMap, opts Options) {
	c := fields[Line1][FieldClassification]
	if _, ok := parseClassification(c); !ok {
		sev := classifySeverity(CodeInvalidClassification, opts.Mode)
		appendIssue(report, Issue{
			Code:     CodeInvalidClassification,
			Severity: sev,
			Message:  "classification must be one of U, C, S",
			Line:     Line1,
			Field:    FieldClassification,
			Expected: []string{"U", "C", "S"},
			Actual:   c,
		}, opts)
		return
	}
	if c == "C" || c == "S" {
		appendIssue(report, Issue{
			Code:     CodeClassifiedDataWarning,
			Severity: SeverityWarning,
			Message:  "record is marked classified or secret",
			Line:     Line1,
			Field:    FieldClassification,
			Actual:   c,
		}, opts)
	}
}

type rangeCheck struct {
	field            FieldName
	line             Line
	parse            func(string) (float64, error)
	min              float64
	max              float64
	maxIsWarningOnly bool
}

func plainFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func validateRanges(report *ValidationReport, fields FieldMap, opts Options) {
	checks := []rangeCheck{
		{field: FieldEpochDay, line: Line1, parse: plainFloat, min: 1.0, max: 366.99999999},
		{field: FieldInclination, line: Line2, parse: plainFloat, min: 0, max: 180},
		{field: FieldRightAscension, line: Line2, parse: plainFloat, min: 0, max: 360},
		{field: FieldEccentricity, line: Line2, parse: normalizeEccentricity, min: 0, max: 1},
		{field: FieldArgOfPerigee, line: Line2, parse: plainFloat, min: 0, max: 360},
		{field: FieldMeanAnomaly, line: Line2, parse: plainFloat, min: 0, max: 360},
		{field: FieldMeanMotion, line: Line2, parse: plainFloat, min: 0, max: 20, maxIsWarningOnly: true},
	}

	for _, c := range checks {
		raw := fields[c.line][c.field]
		v, err := c.parse(raw)
		if err != nil {
			appendIssue(report, Issue{
				Code:     CodeInvalidNumberFormat,
				Severity: SeverityError,
				Message:  "could not parse numeric field",
				Line:     c.line,
				Field:    c.field,
				Actual:   raw,
			}, opts)
			continue
		}
		if v < c.min {
			appendIssue(report, Issue{
				Code:     CodeValueOutOfRange,
				Severity: classifySeverity(CodeValueOutOfRange, opts.Mode),
				Message:  "value below minimum",
				Line:     c.line,
				Field:    c.field,
				Expected: []float64{c.min, c.max},
				Actual:   v,
			}, opts)
		} else if v > c.max {
			sev := classifySeverity(CodeValueOutOfRange, opts.Mode)
			if c.maxIsWarningOnly {
				sev = SeverityWarning
			}
			appendIssue(report, Issue{
				Code:     CodeValueOutOfRange,
				Severity: sev,
				Message:  "value above maximum",
				Line:     c.line,
				Field:    c.field,
				Expected: []float64{c.min, c.max},
				Actual:   v,
			}, opts)
		}
	}

	validateOptionalBlankInt(report, fields, FieldIntlDesigYear, Line1, 0, 99, opts)
	validateOptionalBlankInt(report, fields, FieldIntlDesigLaunch, Line1, 1, 999, opts)
	validateOptionalBlankInt(report, fields, FieldEphemerisType, Line1, 0, 9, opts)
	validateOptionalBlankInt(report, fields, FieldElementSetNumber, Line1, 0, 9999, opts)
	validateOptionalBlankInt(report, fields, FieldRevolutionNumber, Line2, 0, 99999, opts)

	satNum, err := strconv.Atoi(fields[Line1][FieldSatelliteNumber])
	if err == nil && (satNum < 1 || satNum > 99999) {
		appendIssue(report, Issue{
			Code:     CodeValueOutOfRange,
			Severity: classifySeverity(CodeValueOutOfRange, opts.Mode),
			Message:  "satellite number out of range",
			Line:     Line1,
			Field:    FieldSatelliteNumber,
			Expected: []int{1, 99999},
			Actual:   satNum,
		}, opts)
	}

	epochYear, err := strconv.Atoi(fields[Line1][FieldEpochYear])
	if err != nil {
		appendIssue(report, Issue{
			Code:     CodeInvalidNumberFormat,
			Severity: SeverityError,
			Message:  "could not parse epoch_year",
			Line:     Line1,
			Field:    FieldEpochYear,
			Actual:   fields[Line1][FieldEpochYear],
		}, opts)
	} else if epochYear < 0 || epochYear > 99 {
		appendIssue(report, Issue{
			Code:     CodeValueOutOfRange,
			Severity: classifySeverity(CodeValueOutOfRange, opts.Mode),
			Message:  "epoch_year out of range",
			Line:     Line1,
			Field:    FieldEpochYear,
			Expected: []int{0, 99},
			Actual:   epochYear,
		}, opts)
	}

	// No dedicated code exists for a non-numeric format violation in
	// the closed error-code list (spec.md §7); VALUE_OUT_OF_RANGE is
	// the nearest fit since a piece outside [A-Z]{1,3} is, same as a
	// numeric field, a value outside the field's allowed domain.
	piece := fields[Line1][FieldIntlDesigPiece]
	if piece != "" && !designatorPiecePattern.MatchString(piece) {
		appendIssue(report, Issue{
			Code:     CodeValueOutOfRange,
			Severity: classifySeverity(CodeValueOutOfRange, opts.Mode),
			Message:  "international designator piece must match [A-Z]{1,3}",
			Line:     Line1,
			Field:    FieldIntlDesigPiece,
			Actual:   piece,
		}, opts)
	}
}

func validateOptionalBlankInt(report *ValidationReport, fields FieldMap, field FieldName, line Line, min, max int, opts Options) {
	raw := strings.TrimSpace(fields[line][field])
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		appendIssue(report, Issue{
			Code:     CodeInvalidNumberFormat,
			Severity: SeverityError,
			Message:  "could not parse numeric field",
			Line:     line,
			Field:    field,
			Actual:   raw,
		}, opts)
		return
	}
	if v < min || v > max {
		appendIssue(report, Issue{
			Code:     CodeValueOutOfRange,
			Severity: classifySeverity(CodeValueOutOfRange, opts.Mode),
			Message:  "value out of range",
			Line:     line,
			Field:    field,
			Expected: []int{min, max},
			Actual:   v,
		}, opts)
	}
}

func validateSemanticWarnings(report *ValidationReport, fields FieldMap, opts Options) {
	if !opts.IncludeWarnings {
		return
	}

	epochYear, yearErr := strconv.Atoi(fields[Line1][FieldEpochYear])
	epochDay, dayErr := strconv.ParseFloat(fields[Line1][FieldEpochDay], 64)
	if yearErr == nil && dayErr == nil {
		fullYear := normalizeYear(epochYear)
		epoch := epochFromYearAndDay(fullYear, epochDay)
		ref := opts.referenceTime()
		if ref.Sub(epoch) > 30*24*time.Hour {
			appendIssue(report, Issue{
				Code:     CodeStaleTLEWarning,
				Severity: SeverityWarning,
				Message:  "epoch is more than 30 days old",
				Line:     Line1,
				Field:    FieldEpochDay,
				Actual:   epoch,
			}, opts)
		}
		if fullYear < 2000 {
			appendIssue(report, Issue{
				Code:     CodeDeprecatedEpochYearWarn,
				Severity: SeverityWarning,
				Message:  "epoch year resolves to before 2000",
				Line:     Line1,
				Field:    FieldEpochYear,
				Actual:   fullYear,
			}, opts)
		}
	}

	if ecc, err := normalizeEccentricity(fields[Line2][FieldEccentricity]); err == nil && ecc > 0.25 {
		appendIssue(report, Issue{
			Code:     CodeHighEccentricityWarning,
			Severity: SeverityWarning,
			Message:  "eccentricity exceeds 0.25",
			Line:     Line2,
			Field:    FieldEccentricity,
			Actual:   ecc,
		}, opts)
	}

	if mm, err := strconv.ParseFloat(fields[Line2][FieldMeanMotion], 64); err == nil && mm < 1.0 {
		appendIssue(report, Issue{
			Code:     CodeLowMeanMotionWarning,
			Severity: SeverityWarning,
			Message:  "mean motion below 1.0 rev/day",
			Line:     Line2,
			Field:    FieldMeanMotion,
			Actual:   mm,
		}, opts)
	}

	if rev := strings.TrimSpace(fields[Line2][FieldRevolutionNumber]); rev != "" {
		if v, err := strconv.Atoi(rev); err == nil && v > 90000 {
			appendIssue(report, Issue{
				Code:     CodeRevolutionRolloverWarning,
				Severity: SeverityWarning,
				Message:  "revolution number exceeds 90000",
				Line:     Line2,
				Field:    FieldRevolutionNumber,
				Actual:   v,
			}, opts)
		}
	}

	bstarRaw := strings.TrimSpace(fields[Line1][FieldBStar])
	if bstar, err := normalizeAssumedDecimalExponent(bstarRaw); err == nil {
		if bstarRaw == "00000-0" || bstarRaw == "00000+0" || bstarRaw == "00000 0" || absFloat(bstar) < 1e-12 {
			appendIssue(report, Issue{
				Code:     CodeNearZeroDragWarning,
				Severity: SeverityWarning,
				Message:  "B* drag term is effectively zero",
				Line:     Line1,
				Field:    FieldBStar,
				Actual:   bstar,
			}, opts)
		}
	}

	if fd, err := strconv.ParseFloat(fields[Line1][FieldFirstDerivative], 64); err == nil && fd < 0 {
		appendIssue(report, Issue{
			Code:     CodeNegativeDecayWarning,
			Severity: SeverityWarning,
			Message:  "first derivative of mean motion is negative",
			Line:     Line1,
			Field:    FieldFirstDerivative,
			Actual:   fd,
		}, opts)
	}

	if eph := strings.TrimSpace(fields[Line1][FieldEphemerisType]); eph != "" && eph != "0" {
		appendIssue(report, Issue{
			Code:     CodeNonStandardEphemerisWarn,
			Severity: SeverityWarning,
			Message:  "ephemeris type is not the standard value 0",
			Line:     Line1,
			Field:    FieldEphemerisType,
			Actual:   eph,
		}, opts)
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
