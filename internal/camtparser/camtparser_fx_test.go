package camtparser

import (
	"testing"

	"fjacquet/camt-export/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReconcileExchangeRate(t *testing.T) {
	eur := func(minor int64) *models.CurrencyAmount {
		return &models.CurrencyAmount{Currency: "EUR", Minor: minor}
	}
	chf := func(minor int64) *models.CurrencyAmount {
		return &models.CurrencyAmount{Currency: "CHF", Minor: minor}
	}

	tests := []struct {
		name           string
		fx             models.FxRateInfo
		src            *models.CurrencyAmount
		trg            *models.CurrencyAmount
		expectRate     float64
		expectInverted bool
	}{
		{
			name:       "declared rate confirmed by amounts",
			fx:         models.FxRateInfo{Rate: 0.935, Has: true},
			src:        eur(10000),
			trg:        chf(9350),
			expectRate: 0.935,
		},
		{
			name:           "declared rate is the reciprocal",
			fx:             models.FxRateInfo{Rate: 2.0, Has: true},
			src:            eur(10000),
			trg:            chf(5000),
			expectRate:     0.5,
			expectInverted: true,
		},
		{
			name:       "implausible declared rate replaced",
			fx:         models.FxRateInfo{Rate: 3.0, Has: true},
			src:        eur(10000),
			trg:        chf(5000),
			expectRate: 0.5,
		},
		{
			name:       "no declared rate derives from amounts",
			fx:         models.FxRateInfo{Has: true},
			src:        eur(10000),
			trg:        chf(9350),
			expectRate: 0.935,
		},
		{
			name:       "missing source amount",
			fx:         models.FxRateInfo{Rate: 0.935, Has: true},
			src:        nil,
			trg:        chf(9350),
			expectRate: 0,
		},
		{
			name:       "zero source amount",
			fx:         models.FxRateInfo{Rate: 0.935, Has: true},
			src:        eur(0),
			trg:        chf(9350),
			expectRate: 0,
		},
		{
			name:       "missing currency on amount",
			fx:         models.FxRateInfo{Rate: 0.935, Has: true},
			src:        &models.CurrencyAmount{Minor: 10000},
			trg:        chf(9350),
			expectRate: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, inverted := reconcileExchangeRate(tt.fx, tt.src, tt.trg)
			assert.InDelta(t, tt.expectRate, rate, 1e-9)
			assert.Equal(t, tt.expectInverted, inverted)
		})
	}
}

func TestFxAmountPair(t *testing.T) {
	base := func() *models.EntryTransaction {
		return &models.EntryTransaction{
			Fx: models.FxRateInfo{
				SourceCurrency: "EUR",
				TargetCurrency: "CHF",
				Has:            true,
			},
			FxInstructed:     models.CurrencyAmount{Currency: "EUR", Minor: 10000},
			FxTransaction:    models.CurrencyAmount{Currency: "CHF", Minor: 9350},
			HasFxInstructed:  true,
			HasFxTransaction: true,
		}
	}

	t.Run("instructed to transaction", func(t *testing.T) {
		tx := base()
		src, trg := fxAmountPair(tx)
		assert.Equal(t, &tx.FxInstructed, src)
		assert.Equal(t, &tx.FxTransaction, trg)
	})

	t.Run("reversed currency declaration", func(t *testing.T) {
		tx := base()
		tx.Fx.SourceCurrency = "CHF"
		tx.Fx.TargetCurrency = "EUR"
		src, trg := fxAmountPair(tx)
		assert.Equal(t, &tx.FxTransaction, src)
		assert.Equal(t, &tx.FxInstructed, trg)
	})

	t.Run("counter value to instructed", func(t *testing.T) {
		tx := base()
		tx.HasFxTransaction = false
		tx.FxCounterValue = models.CurrencyAmount{Currency: "EUR", Minor: 10000}
		tx.HasFxCounterValue = true
		tx.FxInstructed = models.CurrencyAmount{Currency: "CHF", Minor: 9350}
		src, trg := fxAmountPair(tx)
		assert.Equal(t, &tx.FxCounterValue, src)
		assert.Equal(t, &tx.FxInstructed, trg)
	})

	t.Run("no exchange block", func(t *testing.T) {
		tx := base()
		tx.Fx.Has = false
		src, trg := fxAmountPair(tx)
		assert.Nil(t, src)
		assert.Nil(t, trg)
	})

	t.Run("currencies do not match any pair", func(t *testing.T) {
		tx := base()
		tx.Fx.SourceCurrency = "USD"
		src, trg := fxAmountPair(tx)
		assert.Nil(t, src)
		assert.Nil(t, trg)
	})
}

func TestReconcileFxRate(t *testing.T) {
	t.Run("updates rate in place", func(t *testing.T) {
		tx := &models.EntryTransaction{
			Fx: models.FxRateInfo{
				SourceCurrency: "EUR",
				TargetCurrency: "CHF",
				Rate:           2.0,
				Has:            true,
			},
			FxInstructed:     models.CurrencyAmount{Currency: "EUR", Minor: 10000},
			FxTransaction:    models.CurrencyAmount{Currency: "CHF", Minor: 5000},
			HasFxInstructed:  true,
			HasFxTransaction: true,
		}

		reconcileFxRate(tx)
		assert.InDelta(t, 0.5, tx.Fx.Rate, 1e-9)
		assert.True(t, tx.Fx.Inverted)
	})

	t.Run("leaves transaction untouched without amounts", func(t *testing.T) {
		tx := &models.EntryTransaction{
			Fx: models.FxRateInfo{
				SourceCurrency: "EUR",
				TargetCurrency: "CHF",
				Rate:           0.935,
				Has:            true,
			},
		}

		reconcileFxRate(tx)
		assert.InDelta(t, 0.935, tx.Fx.Rate, 1e-9)
		assert.False(t, tx.Fx.Inverted)
	})
}
