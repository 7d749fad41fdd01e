package tle

import "strings"

// FieldMap is the raw, column-sliced view of a record: for each line,
// field name to the whitespace-trimmed substring extracted from its
// schema-defined column span. No numeric interpretation happens here
// (spec.md §4.2). Line 1 and line 2 each carry their own
// satellite_number (and line_number) entry so C3 can compare the two
// raw values against each other.
type FieldMap map[Line]map[FieldName]string

// Get returns the trimmed field value for (line, name), and whether
// the schema defines that field on that line.
func (f FieldMap) Get(line Line, name FieldName) (string, bool) {
	m, ok := f[line]
	if !ok {
		return "", false
	}
	v, ok := m[name]
	return v, ok
}

// Line1Field returns a line-1 field's value, or "" if undefined.
func (f FieldMap) Line1Field(name FieldName) string {
	v, _ := f.Get(Line1, name)
	return v
}

// Line2Field returns a line-2 field's value, or "" if undefined.
func (f FieldMap) Line2Field(name FieldName) string {
	v, _ := f.Get(Line2, name)
	return v
}

// extractFields applies the static column schema to two 69-character
// lines. Callers must have already validated both lines are exactly
// TLELineLength characters; extractFields does no bounds checking.
func extractFields(line1, line2 string) FieldMap {
	fields := FieldMap{Line1: {}, Line2: {}}
	for _, c := range columnSchema {
		var line string
		switch c.Line {
		case Line1:
			line = line1
		case Line2:
			line = line2
		}
		fields[c.Line][c.Name] = strings.TrimSpace(line[c.Start:c.End])
	}
	return fields
}

// spanFor exposes a field's original [start,end) column range so
// callers can recover its position for error reporting, per the C2
// contract ("positions must be recoverable on demand").
func spanFor(line Line, name FieldName) (start, end int, ok bool) {
	c, ok := spanOf(line, name)
	if !ok {
		return 0, 0, false
	}
	return c.Start, c.End, true
}
