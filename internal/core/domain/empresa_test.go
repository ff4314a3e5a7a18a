package domain

import "testing"

func TestSanitizeCNPJ(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.345.678/0001-95", "12345678000195"},
		{"12345678000195", "12345678000195"},
		{"", ""},
		{"abc", ""},
		{" 12.345.678/0001-95 ", "12345678000195"},
	}
	for _, tc := range cases {
		if got := SanitizeCNPJ(tc.in); got != tc.want {
			t.Errorf("SanitizeCNPJ(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidCNPJ(t *testing.T) {
	if !ValidCNPJ("12345678000195") {
		t.Errorf("valid CNPJ rejected")
	}
	if ValidCNPJ("123") {
		t.Errorf("short CNPJ accepted")
	}
	if ValidCNPJ("123456780001950") {
		t.Errorf("long CNPJ accepted")
	}
	if ValidCNPJ("00000000000000") {
		t.Errorf("repeated-digit CNPJ accepted")
	}
}

func TestValidAccountSuffix(t *testing.T) {
	for _, ok := range []string{"a.dev", "a.gestor", "a.view"} {
		if !ValidAccountSuffix(ok) {
			t.Errorf("%q should be a valid account username", ok)
		}
	}
	for _, bad := range []string{"a", "a.admin", "", "dev", "a.dev.x"} {
		if ValidAccountSuffix(bad) {
			t.Errorf("%q should be rejected", bad)
		}
	}
}
