package core

import (
	"unicode/utf8"
)

type (
	// Expenditure is a single spending record. The identifier is nil until
	// storage assigns one; every persisted record carries it.
	Expenditure struct {
		ExpenditureID   *int64 `json:"expenditureId"`
		ExpenditureName string `json:"expenditureName"`
		UnitPrice       int64  `json:"unitPrice"`
		Quantity        int64  `json:"quantity"`
		ExpenditureDate Date   `json:"expenditureDate"`
	}

	// Income is a single earning record, same identifier lifecycle as
	// Expenditure.
	Income struct {
		IncomeID   *int64 `json:"incomeId"`
		IncomeName string `json:"incomeName"`
		Amount     int64  `json:"amount"`
		IncomeDate Date   `json:"incomeDate"`
	}
)

const maxNameLength = 255

// WithID returns a copy of the expenditure with the identifier set.
func (e Expenditure) WithID(id int64) Expenditure {
	e.ExpenditureID = &id
	return e
}

// WithID returns a copy of the income with the identifier set.
func (i Income) WithID(id int64) Income {
	i.IncomeID = &id
	return i
}

// Validate checks every constraint independently and reports all violated
// fields together; an empty result means the expenditure is acceptable as
// creation input.
func (e Expenditure) Validate() Violations {
	var v Violations
	if e.ExpenditureID != nil {
		v = append(v, must("expenditureId", "be null"))
	}
	if e.ExpenditureName == "" {
		v = append(v, must("expenditureName", "not be empty"))
	}
	if utf8.RuneCountInString(e.ExpenditureName) > maxNameLength {
		v = append(v, must("expenditureName", "be less than or equal to 255 characters"))
	}
	if e.UnitPrice <= 0 {
		v = append(v, must("unitPrice", "be greater than 0"))
	}
	if e.Quantity <= 0 {
		v = append(v, must("quantity", "be greater than 0"))
	}
	if e.ExpenditureDate.IsZero() {
		v = append(v, must("expenditureDate", "not be null"))
	}
	return v
}

// Validate checks every constraint independently and reports all violated
// fields together.
func (i Income) Validate() Violations {
	var v Violations
	if i.IncomeID != nil {
		v = append(v, must("incomeId", "be null"))
	}
	if i.IncomeName == "" {
		v = append(v, must("incomeName", "not be empty"))
	}
	if utf8.RuneCountInString(i.IncomeName) > maxNameLength {
		v = append(v, must("incomeName", "be less than or equal to 255 characters"))
	}
	if i.Amount <= 0 {
		v = append(v, must("amount", "be greater than 0"))
	}
	if i.IncomeDate.IsZero() {
		v = append(v, must("incomeDate", "not be null"))
	}
	return v
}
