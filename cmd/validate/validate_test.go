package validate_test

import (
	"testing"

	"fjacquet/camt-export/cmd/validate"

	"github.com/stretchr/testify/assert"
)

func TestValidateCommandMetadata(t *testing.T) {
	assert.Equal(t, "validate", validate.Cmd.Use)
	assert.Contains(t, validate.Cmd.Short, "Validate a CAMT file")
	assert.Contains(t, validate.Cmd.Long, "camt-export validate -i statement.xml")
	assert.NotNil(t, validate.Cmd.Run)
}
