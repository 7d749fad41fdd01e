package tle

import "strconv"

// ParserState is a state of the resilient state-machine parser (C5).
type ParserState int

const (
	StateInitial ParserState = iota
	StateDetectingFormat
	StateParsingName
	StateParsingLine1
	StateParsingLine2
	StateValidating
	StateCompleted
	StateError
)

func (s ParserState) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateDetectingFormat:
		return "DetectingFormat"
	case StateParsingName:
		return "ParsingName"
	case StateParsingLine1:
		return "ParsingLine1"
	case StateParsingLine2:
		return "ParsingLine2"
	case StateValidating:
		return "Validating"
	case StateCompleted:
		return "Completed"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// RecoveryAction is the action taken in response to a per-state failure.
type RecoveryAction int

const (
	ActionContinue RecoveryAction = iota
	ActionSkipField
	ActionUseDefault
	ActionAttemptFix
	ActionAbort
)

func (a RecoveryAction) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionSkipField:
		return "SkipField"
	case ActionUseDefault:
		return "UseDefault"
	case ActionAttemptFix:
		return "AttemptFix"
	case ActionAbort:
		return "Abort"
	default:
		return "Unknown"
	}
}

// RecoveryTrace records one recovery decision made while attempting to
// push a corrupted line through the state machine.
type RecoveryTrace struct {
	Action      RecoveryAction
	Description string
	State       ParserState
}

// StateMachineContext reports bookkeeping about a ParseWithStateMachine run.
type StateMachineContext struct {
	LineCount        int
	HasName          bool
	RecoveryAttempts uint
}

// StateMachineResult is always returned by ParseWithStateMachine, even
// on failure (spec.md §4.5): Data may be populated with a partial
// record when IncludePartialResults is set, independent of Success.
type StateMachineResult struct {
	Success  bool
	Data     *ParsedRecord
	Errors   []Issue
	Warnings []Issue
	Recovery []RecoveryTrace
	State    ParserState
	Context  StateMachineContext
}

// ParseWithStateMachine drives C1-C4 through explicit states, tolerating
// per-line corruption that the strict Validate pipeline would reject
// outright. It is grounded on the Decoder/Err() accumulated-error
// pattern used by the RINEX decoders: rather than stopping at the
// first problem, it records an Issue plus a RecoveryAction and keeps
// going, bounded by opts.MaxRecoveryAttempts.
func ParseWithStateMachine(text string, opts Options) StateMachineResult {
	opts, err := opts.normalize()
	if err != nil {
		return StateMachineResult{
			Success: false,
			State:   StateError,
			Errors:  []Issue{newIssue(CodeInvalidInputType, SeverityError, err.Error())},
		}
	}

	result := StateMachineResult{State: StateInitial}
	var attempts uint

	recover := func(state ParserState, action RecoveryAction, description string) bool {
		if !opts.AttemptRecovery {
			result.Recovery = append(result.Recovery, RecoveryTrace{Action: ActionAbort, Description: "recovery disabled by options", State: state})
			return false
		}
		attempts++
		result.Recovery = append(result.Recovery, RecoveryTrace{Action: action, Description: description, State: state})
		return attempts <= opts.MaxRecoveryAttempts
	}

	if len(text) == 0 {
		result.State = StateError
		result.Errors = append(result.Errors, newIssue(CodeEmptyInput, SeverityError, "input is empty"))
		return result
	}

	result.State = StateDetectingFormat
	cl, canonIssues := canonicalize(text)
	for _, iss := range canonIssues {
		if iss.Severity == SeverityError {
			result.Errors = append(result.Errors, iss)
		} else {
			result.Warnings = append(result.Warnings, iss)
		}
	}
	if hasError(canonIssues) {
		result.State = StateError
		return result
	}
	if !opts.IncludeComments {
		cl.Comments = nil
	}

	result.Context.HasName = cl.HasName
	if cl.HasName {
		result.Context.LineCount = 3
		result.State = StateParsingName
	} else {
		result.Context.LineCount = 2
	}

	result.State = StateParsingLine1
	line1 := cl.Line1
	if len(line1) != TLELineLength {
		result.Errors = append(result.Errors, Issue{
			Code: CodeInvalidLineLength, Severity: SeverityError,
			Message: "line 1 has unexpected length", Line: Line1,
			Expected: TLELineLength, Actual: len(line1),
		})
		if !recover(StateParsingLine1, ActionContinue, "continuing with short/long line 1") {
			result.State = StateError
			return result
		}
		if len(line1) > TLELineLength {
			line1 = line1[:TLELineLength]
		} else {
			line1 = line1 + pad(TLELineLength-len(line1))
		}
	}
	if line1[0] != '1' {
		result.Errors = append(result.Errors, Issue{
			Code: CodeInvalidLineNumber, Severity: SeverityError,
			Message: "line 1 does not start with '1'", Line: Line1, Expected: "1", Actual: string(line1[0]),
		})
		if !recover(StateParsingLine1, ActionAttemptFix, "accepting line at index 1 despite bad prefix") {
			result.State = StateError
			return result
		}
	}

	result.State = StateParsingLine2
	line2 := cl.Line2
	if len(line2) != TLELineLength {
		result.Errors = append(result.Errors, Issue{
			Code: CodeInvalidLineLength, Severity: SeverityError,
			Message: "line 2 has unexpected length", Line: Line2,
			Expected: TLELineLength, Actual: len(line2),
		})
		if !recover(StateParsingLine2, ActionContinue, "continuing with short/long line 2") {
			result.State = StateError
			return result
		}
		if len(line2) > TLELineLength {
			line2 = line2[:TLELineLength]
		} else {
			line2 = line2 + pad(TLELineLength-len(line2))
		}
	}
	if line2[0] != '2' {
		result.Errors = append(result.Errors, Issue{
			Code: CodeInvalidLineNumber, Severity: SeverityError,
			Message: "line 2 does not start with '2'", Line: Line2, Expected: "2", Actual: string(line2[0]),
		})
		if !recover(StateParsingLine2, ActionAttemptFix, "accepting line at index 2 despite bad prefix") {
			result.State = StateError
			return result
		}
	}

	fields := extractFields(line1, line2)

	result.State = StateValidating
	if opts.StrictChecksums {
		for _, ln := range []struct {
			line Line
			text string
		}{{Line1, line1}, {Line2, line2}} {
			res := validateChecksumLine(ln.text)
			if res.Err != nil {
				continue
			}
			if !res.Valid {
				result.Errors = append(result.Errors, Issue{
					Code: CodeChecksumMismatch, Severity: SeverityError,
					Message: "checksum mismatch", Line: ln.line, Expected: res.Expected, Actual: res.Actual,
				})
				if !recover(StateValidating, ActionContinue, "keeping record despite checksum mismatch") {
					result.State = StateError
					return result
				}
			}
		}
	}

	// Unparseable numeric field (spec.md §4.3.2's C5 recovery policy):
	// set the field to the empty sentinel and continue rather than
	// abort the whole record over one bad column.
	for _, nf := range stateMachineNumericFields {
		raw := fields[nf.line][nf.field]
		if nf.optionalBlank && raw == "" {
			continue
		}
		if err := nf.parse(raw); err != nil {
			result.Errors = append(result.Errors, Issue{
				Code: CodeInvalidNumberFormat, Severity: SeverityError,
				Message: "could not parse numeric field", Line: nf.line, Field: nf.field, Actual: raw,
			})
			if !recover(StateValidating, ActionUseDefault, "setting "+string(nf.field)+" to empty sentinel") {
				result.State = StateError
				return result
			}
			fields[nf.line][nf.field] = ""
		}
	}

	s1, s2 := fields.Line1Field(FieldSatelliteNumber), fields.Line2Field(FieldSatelliteNumber)
	if !isAllDigits(s1) || !isAllDigits(s2) {
		result.Errors = append(result.Errors, Issue{
			Code: CodeInvalidSatelliteNumber, Severity: SeverityError,
			Message: "satellite number is not all digits",
		})
		if !recover(StateValidating, ActionUseDefault, "leaving satellite number unresolved") {
			result.State = StateError
			return result
		}
	} else if s1 != s2 {
		result.Errors = append(result.Errors, Issue{
			Code: CodeSatelliteNumberMismatch, Severity: SeverityError,
			Message: "satellite number differs between lines", Expected: s1, Actual: s2,
		})
		if !recover(StateValidating, ActionContinue, "keeping record despite satellite number mismatch") {
			result.State = StateError
			return result
		}
	}

	record := ParsedRecord{
		Name:     cl.Name,
		HasName:  cl.HasName,
		Line1:    line1,
		Line2:    line2,
		Comments: cl.Comments,
		Fields:   fields,
	}

	result.Context.RecoveryAttempts = attempts
	result.State = StateCompleted
	result.Success = !hasError(result.Errors)
	if result.Success || opts.IncludePartialResults {
		result.Data = &record
	}
	return result
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// numericFieldCheck is one entry of the numeric-field recovery table:
// a field that must parse under parse, unless optionalBlank and the
// raw column is empty.
type numericFieldCheck struct {
	field         FieldName
	line          Line
	parse         func(string) error
	optionalBlank bool
}

func atoiErr(s string) error {
	_, err := strconv.Atoi(s)
	return err
}

func floatErr(s string) error {
	_, err := strconv.ParseFloat(s, 64)
	return err
}

func assumedDecimalErr(s string) error {
	_, err := normalizeAssumedDecimalExponent(s)
	return err
}

func eccentricityErr(s string) error {
	_, err := normalizeEccentricity(s)
	return err
}

var stateMachineNumericFields = []numericFieldCheck{
	{field: FieldEpochYear, line: Line1, parse: atoiErr},
	{field: FieldEpochDay, line: Line1, parse: floatErr},
	{field: FieldFirstDerivative, line: Line1, parse: floatErr},
	{field: FieldSecondDerivative, line: Line1, parse: assumedDecimalErr},
	{field: FieldBStar, line: Line1, parse: assumedDecimalErr},
	{field: FieldEphemerisType, line: Line1, parse: atoiErr, optionalBlank: true},
	{field: FieldElementSetNumber, line: Line1, parse: atoiErr, optionalBlank: true},
	{field: FieldIntlDesigYear, line: Line1, parse: atoiErr, optionalBlank: true},
	{field: FieldIntlDesigLaunch, line: Line1, parse: atoiErr, optionalBlank: true},
	{field: FieldInclination, line: Line2, parse: floatErr},
	{field: FieldRightAscension, line: Line2, parse: floatErr},
	{field: FieldEccentricity, line: Line2, parse: eccentricityErr},
	{field: FieldArgOfPerigee, line: Line2, parse: floatErr},
	{field: FieldMeanAnomaly, line: Line2, parse: floatErr},
	{field: FieldMeanMotion, line: Line2, parse: floatErr},
	{field: FieldRevolutionNumber, line: Line2, parse: atoiErr, optionalBlank: true},
}
