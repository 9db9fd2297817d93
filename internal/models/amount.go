package models

// CurrencyAmount is a monetary value in minor units (cents for two-decimal
// currencies) together with its ISO 4217 currency code. Minor-unit integers
// keep statement arithmetic exact; conversion to and from decimal strings
// lives in currencyutils.
type CurrencyAmount struct {
	Currency string
	Minor    int64
}

// NewCurrencyAmount creates a CurrencyAmount from a currency code and a
// minor-unit value.
func NewCurrencyAmount(currency string, minor int64) CurrencyAmount {
	return CurrencyAmount{Currency: currency, Minor: minor}
}

// IsZero returns true if the amount is zero.
func (a CurrencyAmount) IsZero() bool {
	return a.Minor == 0
}

// HasCurrency returns true if a currency code is present.
func (a CurrencyAmount) HasCurrency() bool {
	return a.Currency != ""
}
