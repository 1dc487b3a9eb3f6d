package core

import (
	"strings"
	"testing"
)

func TestIncomeValidateOK(t *testing.T) {
	income := Income{
		IncomeName: "給与",
		Amount:     200000,
		IncomeDate: NewDate(2019, 4, 15),
	}
	if v := income.Validate(); !v.IsEmpty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestIncomeValidateAllFieldsViolated(t *testing.T) {
	id := int64(1000)
	income := Income{
		IncomeID:   &id,
		IncomeName: "",
		Amount:     -1,
	}
	v := income.Validate()
	if len(v) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(v), v)
	}
	details := v.Details()
	want := map[string]string{
		"incomeId":   `"incomeId" must be null`,
		"incomeName": `"incomeName" must not be empty`,
		"amount":     `"amount" must be greater than 0`,
		"incomeDate": `"incomeDate" must not be null`,
	}
	for field, msg := range want {
		msgs, ok := details[field]
		if !ok {
			t.Fatalf("missing violation for %s", field)
		}
		if len(msgs) != 1 || msgs[0] != msg {
			t.Fatalf("field %s: got %v, want %q", field, msgs, msg)
		}
	}
}

func TestIncomeValidateNameTooLong(t *testing.T) {
	income := Income{
		IncomeName: strings.Repeat("あ", 256),
		Amount:     1,
		IncomeDate: NewDate(2019, 4, 15),
	}
	v := income.Validate()
	if len(v) != 1 {
		t.Fatalf("expected 1 violation, got %v", v)
	}
	if v[0].Message != `"incomeName" must be less than or equal to 255 characters` {
		t.Fatalf("unexpected message %q", v[0].Message)
	}
}

func TestIncomeValidateBoundaryValues(t *testing.T) {
	income := Income{
		IncomeName: strings.Repeat("a", 255),
		Amount:     1,
		IncomeDate: NewDate(2019, 4, 15),
	}
	if v := income.Validate(); !v.IsEmpty() {
		t.Fatalf("expected boundary values to pass, got %v", v)
	}
	income.Amount = 0
	if v := income.Validate(); len(v) != 1 {
		t.Fatalf("expected zero amount to fail, got %v", v)
	}
}

func TestExpenditureValidateOK(t *testing.T) {
	e := Expenditure{
		ExpenditureName: "本",
		UnitPrice:       2000,
		Quantity:        1,
		ExpenditureDate: NewDate(2019, 4, 1),
	}
	if v := e.Validate(); !v.IsEmpty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestExpenditureValidateAllFieldsViolated(t *testing.T) {
	id := int64(99)
	e := Expenditure{
		ExpenditureID: &id,
		UnitPrice:     0,
		Quantity:      -2,
	}
	v := e.Validate()
	if len(v) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(v), v)
	}
	details := v.Details()
	for field, msg := range map[string]string{
		"expenditureId":   `"expenditureId" must be null`,
		"expenditureName": `"expenditureName" must not be empty`,
		"unitPrice":       `"unitPrice" must be greater than 0`,
		"quantity":        `"quantity" must be greater than 0`,
		"expenditureDate": `"expenditureDate" must not be null`,
	} {
		if msgs := details[field]; len(msgs) != 1 || msgs[0] != msg {
			t.Fatalf("field %s: got %v, want %q", field, msgs, msg)
		}
	}
}

func TestWithIDCopies(t *testing.T) {
	original := Income{IncomeName: "給与", Amount: 1, IncomeDate: NewDate(2019, 4, 15)}
	created := original.WithID(100)
	if original.IncomeID != nil {
		t.Fatalf("WithID mutated the original")
	}
	if created.IncomeID == nil || *created.IncomeID != 100 {
		t.Fatalf("expected id 100, got %v", created.IncomeID)
	}

	e := Expenditure{ExpenditureName: "本", UnitPrice: 2000, Quantity: 1, ExpenditureDate: NewDate(2019, 4, 1)}
	if got := e.WithID(7); got.ExpenditureID == nil || *got.ExpenditureID != 7 {
		t.Fatalf("expected id 7, got %v", got.ExpenditureID)
	}
}
