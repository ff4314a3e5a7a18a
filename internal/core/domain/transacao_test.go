package domain

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateDates_OK(t *testing.T) {
	today := day("2024-01-15")
	saida := day("2024-01-12")
	errs := ValidateDates(day("2024-01-10"), &saida, today)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateDates_SameDay(t *testing.T) {
	today := day("2024-01-15")
	saida := day("2024-01-15")
	errs := ValidateDates(day("2024-01-15"), &saida, today)
	if len(errs) != 0 {
		t.Fatalf("today itself must be allowed, got %v", errs)
	}
}

func TestValidateDates_EntradaFuture(t *testing.T) {
	today := day("2024-01-15")
	errs := ValidateDates(day("2024-01-16"), nil, today)
	if _, ok := errs["data_entrada"]; !ok {
		t.Fatalf("expected data_entrada violation, got %v", errs)
	}
}

func TestValidateDates_SaidaFuture(t *testing.T) {
	today := day("2024-01-15")
	saida := day("2024-01-20")
	errs := ValidateDates(day("2024-01-10"), &saida, today)
	if _, ok := errs["data_saida"]; !ok {
		t.Fatalf("expected data_saida violation, got %v", errs)
	}
}

func TestValidateDates_SaidaBeforeEntrada(t *testing.T) {
	today := day("2024-01-15")
	saida := day("2024-01-05")
	errs := ValidateDates(day("2024-01-10"), &saida, today)
	if errs["data_saida"] != "a data de saída não pode ser anterior à data de entrada" {
		t.Fatalf("expected chronological violation, got %v", errs)
	}
}

// Both fields violated at once: each must be reported, not just the first.
func TestValidateDates_Accumulates(t *testing.T) {
	today := day("2024-01-15")
	saida := day("2024-01-16")
	errs := ValidateDates(day("2024-01-17"), &saida, today)
	if len(errs) != 2 {
		t.Fatalf("expected 2 violations, got %v", errs)
	}
	if _, ok := errs["data_entrada"]; !ok {
		t.Errorf("missing data_entrada violation")
	}
	// saida is in the future and also before entrada; the future message wins
	if errs["data_saida"] != "a data de saída não pode estar no futuro" {
		t.Errorf("unexpected data_saida message: %q", errs["data_saida"])
	}
}

// Timestamps within the same calendar day compare equal regardless of clock.
func TestValidateDates_DayGranularity(t *testing.T) {
	today := time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC)
	entrada := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	errs := ValidateDates(entrada, nil, today)
	if len(errs) != 0 {
		t.Fatalf("same-day timestamp rejected: %v", errs)
	}
}

func TestFieldErrorsError(t *testing.T) {
	fe := FieldErrors{"b": "y", "a": "x"}
	if got := fe.Error(); got != "a: x; b: y" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestFieldErrorsErrOrNil(t *testing.T) {
	if err := (FieldErrors{}).ErrOrNil(); err != nil {
		t.Fatalf("empty FieldErrors must be nil, got %v", err)
	}
	if err := (FieldErrors{"f": "m"}).ErrOrNil(); err == nil {
		t.Fatalf("non-empty FieldErrors must be an error")
	}
}
