package tle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_ValidRecord(t *testing.T) {
	assert := assert.New(t)

	rec, err := Parse(issTLE(), DefaultOptions())
	assert.NoError(err)
	assert.Equal("ISS (ZARYA)", rec.Name)
	assert.True(rec.HasName)
	assert.Equal(issLine1, rec.Line1)
	assert.Equal(issLine2, rec.Line2)
}

func TestParse_InvalidRecordReturnsValidationError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(issLine1[:40]+"\n"+issLine2, DefaultOptions())
	assert.Error(err)
	ve, ok := err.(*ValidationError)
	assert.True(ok)
	assert.NotEmpty(ve.Errors)
}

func TestParse_ValidateFalseReturnsRecordDespiteContentErrors(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.Validate = false

	flipped := issLine1[:68] + "9"
	rec, err := Parse("ISS (ZARYA)\n"+flipped+"\n"+issLine2, opts)
	assert.NoError(err)
	assert.Equal("ISS (ZARYA)", rec.Name)
	assert.Equal("25544", rec.Fields.Line1Field(FieldSatelliteNumber))
}

func TestCalculateChecksum_Facade(t *testing.T) {
	assert := assert.New(t)

	got, err := CalculateChecksum(issLine1)
	assert.NoError(err)
	assert.Equal(7, got)
}

func TestCalculateChecksum_TooShort(t *testing.T) {
	assert := assert.New(t)

	_, err := CalculateChecksum("123")
	assert.Error(err)
}

func TestValidateChecksum_Facade(t *testing.T) {
	assert := assert.New(t)

	res, err := ValidateChecksum(issLine2)
	assert.NoError(err)
	assert.True(res.Valid)
}

func TestValidateChecksum_WrongLength(t *testing.T) {
	assert := assert.New(t)

	_, err := ValidateChecksum("too short")
	assert.Error(err)
}

func TestValidateLineStructure(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(ValidateLineStructure(issLine1, Line1))
	assert.NoError(ValidateLineStructure(issLine2, Line2))

	err := ValidateLineStructure(issLine1[:40], Line1)
	assert.Error(err)
	fe, ok := err.(*FormatError)
	assert.True(ok)
	assert.Equal(CodeInvalidLineLength, fe.Code)

	err = ValidateLineStructure(issLine2, Line1)
	assert.Error(err)
	fe, ok = err.(*FormatError)
	assert.True(ok)
	assert.Equal(CodeInvalidLineNumber, fe.Code)
}
