package domain

import (
	"errors"
	"unicode"
)

var (
	ErrEmpresaNotFound = errors.New("empresa not found")
	ErrEmpresaExists   = errors.New("empresa already exists")
)

// Empresa is a registered company. CNPJ is unique within a store; the same
// CNPJ may exist in both physical stores because routing forks records per
// identity (see StoreFor).
type Empresa struct {
	ID        string   `json:"id"`
	Nome      string   `json:"nome"`
	CNPJ      string   `json:"cnpj"` // digits only
	Tipo      []string `json:"tipo"` // e.g. "Medicamentos", "Equipamentos"
	Licitacao bool     `json:"licitacao"`
	Emendas   []string `json:"emendas"`
}

// SanitizeCNPJ strips everything that is not a digit.
func SanitizeCNPJ(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ValidCNPJ checks a sanitized CNPJ: 14 digits, not a single repeated digit.
func ValidCNPJ(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}
	for i := 1; i < len(cnpj); i++ {
		if cnpj[i] != cnpj[0] {
			return true
		}
	}
	return false
}
