package tle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate_S1_CanonicalISS(t *testing.T) {
	assert := assert.New(t)

	report, err := Validate(issTLE(), DefaultOptions())
	assert.NoError(err)
	assert.True(report.IsValid)
	assert.Empty(report.Errors)
	assert.Equal("25544", report.Fields.Line1Field(FieldSatelliteNumber))
	assert.Equal("25544", report.Fields.Line2Field(FieldSatelliteNumber))
	assert.Equal("U", report.Fields.Line1Field(FieldClassification))
	assert.Equal("51.6416", report.Fields.Line2Field(FieldInclination))
}

func TestValidate_S2_FlippedChecksumStrict(t *testing.T) {
	assert := assert.New(t)

	flipped := issLine1[:68] + "9" + "\n" + issLine2
	report, err := Validate("ISS (ZARYA)\n"+flipped, DefaultOptions())
	assert.NoError(err)
	assert.False(report.IsValid)

	var found []Issue
	for _, iss := range report.Errors {
		if iss.Code == CodeChecksumMismatch {
			found = append(found, iss)
		}
	}
	assert.Len(found, 1)
	assert.Equal(7, found[0].Expected)
	assert.Equal(9, found[0].Actual)
	assert.Equal(Line1, found[0].Line)
}

func TestValidate_S2_FlippedChecksumPermissive(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.Mode = ModePermissive
	flipped := issLine1[:68] + "9" + "\n" + issLine2
	report, err := Validate("ISS (ZARYA)\n"+flipped, opts)
	assert.NoError(err)
	assert.True(report.IsValid)
	assert.Empty(report.Errors)

	found := false
	for _, iss := range report.Warnings {
		if iss.Code == CodeChecksumMismatch {
			found = true
		}
	}
	assert.True(found)
}

func TestValidate_S3_SatelliteNumberMismatch(t *testing.T) {
	assert := assert.New(t)

	badLine2 := "2 25545  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563538"
	strictReport, err := Validate(issLine1+"\n"+badLine2, DefaultOptions())
	assert.NoError(err)
	assert.False(strictReport.IsValid)
	assert.True(issuesContain(strictReport.Errors, CodeSatelliteNumberMismatch))

	permissive := DefaultOptions()
	permissive.Mode = ModePermissive
	permReport, err := Validate(issLine1+"\n"+badLine2, permissive)
	assert.NoError(err)
	assert.True(issuesContain(permReport.Warnings, CodeSatelliteNumberMismatch))
}

func TestValidate_S4_InvalidClassification(t *testing.T) {
	assert := assert.New(t)

	mutated := []byte(issLine1)
	mutated[7] = 'X'
	line1 := string(mutated)

	report, err := Validate(line1+"\n"+issLine2, DefaultOptions())
	assert.NoError(err)
	assert.False(report.IsValid)

	var found *Issue
	for i, iss := range report.Errors {
		if iss.Code == CodeInvalidClassification {
			found = &report.Errors[i]
		}
	}
	assert.NotNil(found)
	assert.Equal("X", found.Actual)

	assert.False(issuesContain(report.Errors, CodeChecksumMismatch))
}

func TestValidate_S6_StaleAndDeprecatedEpoch(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.ReferenceTime = time.Date(2008, time.December, 1, 0, 0, 0, 0, time.UTC)

	report, err := Validate(issTLE(), opts)
	assert.NoError(err)
	assert.True(report.IsValid)
	assert.True(issuesContain(report.Warnings, CodeStaleTLEWarning))
	assert.False(issuesContain(report.Warnings, CodeDeprecatedEpochYearWarn))

	// Epoch year "98" resolves to 1998; the checksum digit rises by 9.
	old := []byte(issLine1)
	old[18] = '9'
	old[68] = '6'
	oldReport, err := Validate(string(old)+"\n"+issLine2, opts)
	assert.NoError(err)
	assert.True(oldReport.IsValid)
	assert.True(issuesContain(oldReport.Warnings, CodeStaleTLEWarning))
	assert.True(issuesContain(oldReport.Warnings, CodeDeprecatedEpochYearWarn))
}

func TestValidate_ModeMonotonicity(t *testing.T) {
	assert := assert.New(t)

	flipped := issLine1[:68] + "9"
	text := "ISS (ZARYA)\n" + flipped + "\n" + issLine2

	strictOpts := DefaultOptions()
	permOpts := DefaultOptions()
	permOpts.Mode = ModePermissive

	strictReport, err := Validate(text, strictOpts)
	assert.NoError(err)
	permReport, err := Validate(text, permOpts)
	assert.NoError(err)

	strictCodes := map[ErrorCode]bool{}
	for _, iss := range strictReport.Errors {
		strictCodes[iss.Code] = true
	}
	for _, iss := range permReport.Errors {
		assert.True(strictCodes[iss.Code], "permissive error %s must also be a strict error", iss.Code)
	}
}

func TestValidate_ErrorCompleteness(t *testing.T) {
	assert := assert.New(t)

	mutated := []byte(issLine1)
	mutated[7] = 'X'    // invalid classification
	mutated[68] = byte('0' + (int(issLine1[68]-'0')+1)%10) // wrong checksum
	line1 := string(mutated)

	badLine2 := "2 25545  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563538"

	report, err := Validate(line1+"\n"+badLine2, DefaultOptions())
	assert.NoError(err)
	assert.False(report.IsValid)
	assert.True(issuesContain(report.Errors, CodeInvalidClassification))
	assert.True(issuesContain(report.Errors, CodeChecksumMismatch))
	assert.True(issuesContain(report.Errors, CodeSatelliteNumberMismatch))
}

func TestValidate_EmptyInput(t *testing.T) {
	assert := assert.New(t)

	_, err := Validate("   \n\n", DefaultOptions())
	assert.Error(err)
	fe, ok := err.(*FormatError)
	assert.True(ok)
	assert.Equal(CodeEmptyInput, fe.Code)
	assert.ErrorIs(err, ErrEmptyInput)
}

func TestValidate_InvalidLineLength(t *testing.T) {
	assert := assert.New(t)

	report, err := Validate(issLine1[:40]+"\n"+issLine2, DefaultOptions())
	assert.NoError(err)
	assert.False(report.IsValid)
	assert.True(issuesContain(report.Errors, CodeInvalidLineLength))
}

func TestValidate_ValidateFalseSkipsContentLayers(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.Validate = false

	flipped := issLine1[:68] + "9"
	report, err := Validate("ISS (ZARYA)\n"+flipped+"\n"+issLine2, opts)
	assert.NoError(err)
	assert.True(report.IsValid)
	assert.Empty(report.Errors)
	assert.Empty(report.Warnings)
	assert.Equal("25544", report.Fields.Line1Field(FieldSatelliteNumber))
}

func TestValidate_StrictChecksumsFalseSkipsChecksumLayer(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.StrictChecksums = false

	flipped := issLine1[:68] + "9"
	report, err := Validate("ISS (ZARYA)\n"+flipped+"\n"+issLine2, opts)
	assert.NoError(err)
	assert.True(report.IsValid)
	assert.False(issuesContain(report.Errors, CodeChecksumMismatch))
	assert.False(issuesContain(report.Warnings, CodeChecksumMismatch))
}

func TestValidate_IncludeCommentsFalseDropsComments(t *testing.T) {
	assert := assert.New(t)

	text := "# a comment\n" + issTLE()

	kept, err := Validate(text, DefaultOptions())
	assert.NoError(err)
	assert.NotEmpty(kept.Lines.Comments)

	opts := DefaultOptions()
	opts.IncludeComments = false
	dropped, err := Validate(text, opts)
	assert.NoError(err)
	assert.Empty(dropped.Lines.Comments)
}
