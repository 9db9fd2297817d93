package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTitle(t *testing.T) {
	assert.Equal(t, "BookingDate", FieldBookingDate.Title(true))
	assert.Equal(t, "CreditDebit", FieldCreditDebit.Title(false))
	assert.Equal(t, "IsCredit", FieldCreditDebit.Title(true))
	assert.Equal(t, "TxOrdinal", FieldTxOrdinal.Title(false))
	assert.Empty(t, FieldCount.Title(false))

	for f := Field(0); f < FieldCount; f++ {
		assert.NotEmpty(t, f.Title(false), "field %d has a title", f)
	}
}

func TestCoreHashFieldsAscending(t *testing.T) {
	for i := 1; i < len(CoreHashFields); i++ {
		assert.Less(t, int(CoreHashFields[i-1]), int(CoreHashFields[i]))
	}
}
