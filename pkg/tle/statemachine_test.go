package tle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWithStateMachine_S1_CleanRecord(t *testing.T) {
	assert := assert.New(t)

	result := ParseWithStateMachine(issTLE(), DefaultOptions())
	assert.True(result.Success)
	assert.Equal(StateCompleted, result.State)
	assert.NotNil(result.Data)
	assert.Empty(result.Errors)
}

func TestParseWithStateMachine_S5_TruncatedLine1(t *testing.T) {
	assert := assert.New(t)

	truncated := issLine1[:40]
	opts := DefaultOptions()

	result := ParseWithStateMachine("ISS (ZARYA)\n"+truncated+"\n"+issLine2, opts)

	assert.False(result.Success)
	assert.True(issuesContain(result.Errors, CodeInvalidLineLength))

	var lengthIssue *Issue
	for i, iss := range result.Errors {
		if iss.Code == CodeInvalidLineLength {
			lengthIssue = &result.Errors[i]
		}
	}
	assert.NotNil(lengthIssue)
	assert.Equal(TLELineLength, lengthIssue.Expected)
	assert.Equal(40, lengthIssue.Actual)

	assert.NotEmpty(result.Recovery)
	assert.Equal(ActionContinue, result.Recovery[0].Action)

	assert.NotNil(result.Data)
}

func TestParseWithStateMachine_BoundedRecovery(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.MaxRecoveryAttempts = 1

	mutated := []byte(issLine1)
	mutated[0] = '9' // bad line-number prefix forces a recovery attempt

	truncated := string(mutated)[:40]
	result := ParseWithStateMachine("ISS (ZARYA)\n"+truncated+"\n"+issLine2, opts)

	assert.Equal(StateError, result.State)
	assert.False(result.Success)
}

func TestParseWithStateMachine_UnparseableNumericFieldUsesDefault(t *testing.T) {
	assert := assert.New(t)

	mutated := []byte(issLine2)
	// Overwrite the inclination column with letters so it cannot parse.
	copy(mutated[8:16], "XXXXXXXX")

	result := ParseWithStateMachine(issTLE()[:len(issTLE())-len(issLine2)]+string(mutated), DefaultOptions())

	assert.True(issuesContain(result.Errors, CodeInvalidNumberFormat))

	var useDefault *RecoveryTrace
	for i, tr := range result.Recovery {
		if tr.Action == ActionUseDefault && tr.State == StateValidating {
			useDefault = &result.Recovery[i]
		}
	}
	assert.NotNil(useDefault)
	assert.NotNil(result.Data)
	assert.Equal("", result.Data.Fields.Line2Field(FieldInclination))
}

func TestParseWithStateMachine_AttemptRecoveryFalseAbortsImmediately(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.AttemptRecovery = false

	result := ParseWithStateMachine("ISS (ZARYA)\n"+issLine1[:40]+"\n"+issLine2, opts)

	assert.Equal(StateError, result.State)
	assert.False(result.Success)
	assert.NotEmpty(result.Recovery)
	assert.Equal(ActionAbort, result.Recovery[0].Action)
}

func TestParseWithStateMachine_EmptyInput(t *testing.T) {
	assert := assert.New(t)

	result := ParseWithStateMachine("", DefaultOptions())
	assert.False(result.Success)
	assert.Equal(StateError, result.State)
	assert.True(issuesContain(result.Errors, CodeEmptyInput))
}

func TestRecoveryActionString(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		action RecoveryAction
		want   string
	}{
		{ActionContinue, "Continue"},
		{ActionSkipField, "SkipField"},
		{ActionUseDefault, "UseDefault"},
		{ActionAttemptFix, "AttemptFix"},
		{ActionAbort, "Abort"},
	}
	for _, tt := range tests {
		assert.Equal(tt.want, tt.action.String())
	}
}
