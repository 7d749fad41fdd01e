package tle

// FieldName identifies one column-schema field.
type FieldName string

// Field names enumerated by the column schema. Values are stable and
// used as keys into FieldMap.
const (
	FieldLineNumber       FieldName = "line_number"
	FieldSatelliteNumber  FieldName = "satellite_number"
	FieldClassification   FieldName = "classification"
	FieldIntlDesigYear    FieldName = "intl_desig_year"
	FieldIntlDesigLaunch  FieldName = "intl_desig_launch_number"
	FieldIntlDesigPiece   FieldName = "intl_desig_piece"
	FieldEpochYear        FieldName = "epoch_year"
	FieldEpochDay         FieldName = "epoch_day"
	FieldFirstDerivative  FieldName = "first_derivative"
	FieldSecondDerivative FieldName = "second_derivative"
	FieldBStar            FieldName = "b_star"
	FieldEphemerisType    FieldName = "ephemeris_type"
	FieldElementSetNumber FieldName = "element_set_number"
	FieldChecksum1        FieldName = "checksum_line1"

	FieldInclination      FieldName = "inclination"
	FieldRightAscension   FieldName = "right_ascension"
	FieldEccentricity     FieldName = "eccentricity"
	FieldArgOfPerigee     FieldName = "argument_of_perigee"
	FieldMeanAnomaly      FieldName = "mean_anomaly"
	FieldMeanMotion       FieldName = "mean_motion"
	FieldRevolutionNumber FieldName = "revolution_number"
	FieldChecksum2        FieldName = "checksum_line2"
)

// Line identifies which of the two data lines a field belongs to.
type Line int

const (
	Line1 Line = 1
	Line2 Line = 2
)

// columnSpan is a [Start, End) column range, zero-based, end-exclusive.
type columnSpan struct {
	Name  FieldName
	Line  Line
	Start int
	End   int
}

// TLELineLength is the mandatory length of a TLE data line, including
// the trailing checksum digit.
const TLELineLength = 69

// columnSchema is the authoritative, static TLE column layout (spec.md §3).
// extractFields and spanFor read their offsets from this table. Not
// every column access goes through it: the line-number checks read
// column 0 directly, the checksum digit is read at TLELineLength-1, and
// the reconstructor writes each field with its width written out in
// code.
var columnSchema = []columnSpan{
	{FieldLineNumber, Line1, 0, 1},
	{FieldSatelliteNumber, Line1, 2, 7},
	{FieldClassification, Line1, 7, 8},
	{FieldIntlDesigYear, Line1, 9, 11},
	{FieldIntlDesigLaunch, Line1, 11, 14},
	{FieldIntlDesigPiece, Line1, 14, 17},
	{FieldEpochYear, Line1, 18, 20},
	{FieldEpochDay, Line1, 20, 32},
	{FieldFirstDerivative, Line1, 33, 43},
	{FieldSecondDerivative, Line1, 44, 52},
	{FieldBStar, Line1, 53, 61},
	{FieldEphemerisType, Line1, 62, 63},
	{FieldElementSetNumber, Line1, 64, 68},
	{FieldChecksum1, Line1, 68, 69},

	{FieldLineNumber, Line2, 0, 1},
	{FieldSatelliteNumber, Line2, 2, 7},
	{FieldInclination, Line2, 8, 16},
	{FieldRightAscension, Line2, 17, 25},
	{FieldEccentricity, Line2, 26, 33},
	{FieldArgOfPerigee, Line2, 34, 42},
	{FieldMeanAnomaly, Line2, 43, 51},
	{FieldMeanMotion, Line2, 52, 63},
	{FieldRevolutionNumber, Line2, 63, 68},
	{FieldChecksum2, Line2, 68, 69},
}

// schemaIndex maps (line, field) to its column span for O(1) lookup.
var schemaIndex = buildSchemaIndex()

func buildSchemaIndex() map[Line]map[FieldName]columnSpan {
	idx := map[Line]map[FieldName]columnSpan{Line1: {}, Line2: {}}
	for _, c := range columnSchema {
		idx[c.Line][c.Name] = c
	}
	return idx
}

// columnsFor returns the fields defined for the given line, in schema order.
func columnsFor(line Line) []columnSpan {
	var out []columnSpan
	for _, c := range columnSchema {
		if c.Line == line {
			out = append(out, c)
		}
	}
	return out
}

// spanOf returns the column span for a field on a line, and whether it exists.
func spanOf(line Line, name FieldName) (columnSpan, bool) {
	c, ok := schemaIndex[line][name]
	return c, ok
}
