package sendflow

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"0244000000", "0551234567", "+233244000000", "024 400 0000"}
	for _, p := range valid {
		if !ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "12345", "024400000", "02440000000", "+15551234567", "abcdefghij"}
	for _, p := range invalid {
		if ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := map[string]string{
		"0244000000":    "+233244000000",
		"024 400 0000":  "+233244000000",
		"+233244000000": "+233244000000",
	}
	for in, want := range cases {
		if got := NormalizePhoneNumber(in); got != want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	if got := FormatPhoneNumber("0244000000"); got != "024 400 0000" {
		t.Errorf("FormatPhoneNumber local = %q", got)
	}
	if got := FormatPhoneNumber("+233244000000"); got != "024 400 0000" {
		t.Errorf("FormatPhoneNumber intl = %q", got)
	}
	// garbage passes through untouched
	if got := FormatPhoneNumber("n/a"); got != "n/a" {
		t.Errorf("FormatPhoneNumber passthrough = %q", got)
	}
}

func TestValidateName(t *testing.T) {
	if ValidateName(" a ") {
		t.Error("single character name should fail")
	}
	if !ValidateName("Ama Owusu") {
		t.Error("real name should pass")
	}
}

func TestValidateAddress(t *testing.T) {
	if ValidateAddress("ab") {
		t.Error("two characters should fail")
	}
	if !ValidateAddress("12 High St") {
		t.Error("street address should pass")
	}
}

func TestValidatePostalCode(t *testing.T) {
	for _, code := range []string{"GA-123-4567", "ga-123-4567", "00233", "4455"} {
		if !ValidatePostalCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}
	for _, code := range []string{"", "G-12-34", "123"} {
		if ValidatePostalCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
