package tle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnsFor_CoversAllFields(t *testing.T) {
	assert := assert.New(t)

	assert.Len(columnsFor(Line1), 14)
	assert.Len(columnsFor(Line2), 10)
}

func TestSpanOf_UnknownFieldNotFound(t *testing.T) {
	assert := assert.New(t)

	_, ok := spanOf(Line1, FieldInclination)
	assert.False(ok)
}

func TestColumnSchema_NoOverlapWithinLine(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []Line{Line1, Line2} {
		spans := columnsFor(line)
		covered := make([]bool, TLELineLength)
		for _, span := range spans {
			for i := span.Start; i < span.End; i++ {
				assert.False(covered[i], "column %d double-claimed on line %d", i, line)
				covered[i] = true
			}
		}
	}
}
