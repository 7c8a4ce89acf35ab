package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "inspekt/pkg/domain-errors"
)

func TestParseIDsRejectEmpty(t *testing.T) {
	_, err := ParsePropertyID("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParseVendorID("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParseStaffID("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParseEventID("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseIDsAcceptOperatorFormat(t *testing.T) {
	id, err := ParsePropertyID("P-001")
	require.NoError(t, err)
	assert.Equal(t, "P-001", id.String())
	assert.False(t, id.IsNil())
	assert.True(t, PropertyID("").IsNil())
}
