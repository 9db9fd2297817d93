package camtparser

import (
	"math"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/models"
)

// Relative tolerance when comparing a supplied exchange rate against the
// rate derived from the amount pair.
const fxRelTolerance = 1e-6

// reconcileFxRate validates the supplied exchange rate against the amount
// pair it claims to relate to and repairs inverted or implausible rates.
// The rate info is left untouched when no usable amount pair exists.
func reconcileFxRate(t *models.EntryTransaction) {
	src, trg := fxAmountPair(t)
	rate, inverted := reconcileExchangeRate(t.Fx, src, trg)
	if rate > 0 {
		t.Fx.Rate = rate
		t.Fx.Has = true
		t.Fx.Inverted = inverted
	}
}

// fxAmountPair maps the captured FX amounts onto the declared source and
// target currencies. The instructed/settlement pair is tried first, then
// countervalue/instructed, each in both directions.
func fxAmountPair(t *models.EntryTransaction) (src, trg *models.CurrencyAmount) {
	if !t.Fx.Has || t.Fx.SourceCurrency == "" || t.Fx.TargetCurrency == "" {
		return nil, nil
	}

	if t.HasFxInstructed && t.HasFxTransaction {
		switch {
		case t.Fx.SourceCurrency == t.FxInstructed.Currency && t.Fx.TargetCurrency == t.FxTransaction.Currency:
			return &t.FxInstructed, &t.FxTransaction
		case t.Fx.SourceCurrency == t.FxTransaction.Currency && t.Fx.TargetCurrency == t.FxInstructed.Currency:
			return &t.FxTransaction, &t.FxInstructed
		}
	}

	if t.HasFxCounterValue && t.HasFxInstructed {
		switch {
		case t.Fx.SourceCurrency == t.FxCounterValue.Currency && t.Fx.TargetCurrency == t.FxInstructed.Currency:
			return &t.FxCounterValue, &t.FxInstructed
		case t.Fx.SourceCurrency == t.FxInstructed.Currency && t.Fx.TargetCurrency == t.FxCounterValue.Currency:
			return &t.FxInstructed, &t.FxCounterValue
		}
	}
	return nil, nil
}

// reconcileExchangeRate derives the effective source-to-target rate from the
// two amounts and checks the supplied rate against it. A supplied rate that
// matches the reciprocal of the derived rate is reported as inverted. The
// returned rate is zero when no pair is usable.
func reconcileExchangeRate(fx models.FxRateInfo, src, trg *models.CurrencyAmount) (rate float64, inverted bool) {
	if src == nil || trg == nil {
		return 0, false
	}
	if src.Currency == "" || trg.Currency == "" {
		return 0, false
	}
	if src.Minor == 0 || trg.Minor == 0 {
		return 0, false
	}

	srcMaj := majorUnits(*src)
	trgMaj := majorUnits(*trg)
	if srcMaj == 0 {
		return 0, false
	}

	derived := trgMaj / srcMaj

	if fx.Has && fx.Rate > 0 {
		tol := math.Max(1e-9, math.Abs(derived)*fxRelTolerance)
		switch {
		case math.Abs(fx.Rate-derived) <= tol:
			return fx.Rate, false
		case math.Abs(1/fx.Rate-derived) <= tol:
			// supplied rate was effectively inverted
			return derived, true
		default:
			// implausible supplied rate, trust the amounts
			return derived, false
		}
	}
	return derived, false
}

func majorUnits(a models.CurrencyAmount) float64 {
	denom := 1.0
	for i := 0; i < currencyutils.Exponent(a.Currency); i++ {
		denom *= 10
	}
	return float64(a.Minor) / denom
}
