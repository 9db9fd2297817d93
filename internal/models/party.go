package models

import "fmt"

// Party represents a transaction party (debtor, creditor, or one of their
// ultimate counterparts).
type Party struct {
	Name string
	IBAN string
	BIC  string
}

// IsEmpty returns true if the party carries no information at all.
func (p Party) IsEmpty() bool {
	return p.Name == "" && p.IBAN == "" && p.BIC == ""
}

// HasName returns true if the party has a non-empty name.
func (p Party) HasName() bool {
	return p.Name != ""
}

// String returns a short human-readable representation of the party.
func (p Party) String() string {
	switch {
	case p.Name != "" && p.IBAN != "":
		return fmt.Sprintf("%s (%s)", p.Name, p.IBAN)
	case p.Name != "":
		return p.Name
	default:
		return p.IBAN
	}
}

// Agent is a financial institution reference.
type Agent struct {
	BIC  string
	Name string
}

// IsEmpty returns true if the agent carries no information.
func (a Agent) IsEmpty() bool {
	return a.BIC == "" && a.Name == ""
}

// AccountID identifies an account either by IBAN or by a bank-proprietary
// identifier from the Othr/Id element.
type AccountID struct {
	IBAN  string
	Other string
}

// Identifier returns the IBAN when present, otherwise the proprietary id.
func (id AccountID) Identifier() string {
	if id.IBAN != "" {
		return id.IBAN
	}
	return id.Other
}

// Account is the statement-owning account from the Acct block.
type Account struct {
	ID       AccountID
	Name     string
	Currency string
	Servicer Agent
}

// RelatedParties groups the counterparty information of a transaction.
type RelatedParties struct {
	Debtor           Party
	DebtorAccount    AccountID
	UltimateDebtor   Party
	Creditor         Party
	CreditorAccount  AccountID
	UltimateCreditor Party
}

// RelatedAgents groups the counterparty banks of a transaction.
type RelatedAgents struct {
	DebtorAgent   Agent
	CreditorAgent Agent
}
