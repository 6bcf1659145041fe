package validator

import "testing"

type mobileProbe struct {
	Mobile string `validate:"required,mobile"`
}

type classProbe struct {
	Class string `validate:"required,class_level"`
}

type enumProbe struct {
	NewsType        string `validate:"omitempty,news_type"`
	AdmissionStatus string `validate:"omitempty,admission_status"`
}

func TestValidator_MobileRule(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mobile string
		valid  bool
	}{
		{name: "ten digits", mobile: "9876543210", valid: true},
		{name: "with country code", mobile: "+919876543210", valid: true},
		{name: "too short", mobile: "98765", valid: false},
		{name: "too long", mobile: "98765432101", valid: false},
		{name: "letters", mobile: "98765abcde", valid: false},
		{name: "country code only", mobile: "+91", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&mobileProbe{Mobile: tt.mobile})
			if errs.HasErrors() == tt.valid {
				t.Errorf("Validate(%q) errors = %v, want valid = %v", tt.mobile, errs, tt.valid)
			}
		})
	}
}

func TestValidator_ClassLevelRule(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		class string
		valid bool
	}{
		{name: "nursery", class: "Nursery", valid: true},
		{name: "numeric class", class: "7", valid: true},
		{name: "stream suffix", class: "11-Science", valid: true},
		{name: "unknown", class: "13", valid: false},
		{name: "case sensitive", class: "nursery", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&classProbe{Class: tt.class})
			if errs.HasErrors() == tt.valid {
				t.Errorf("Validate(%q) errors = %v, want valid = %v", tt.class, errs, tt.valid)
			}
		})
	}
}

func TestValidator_Enumerations(t *testing.T) {
	v := New()

	if errs := v.Validate(&enumProbe{NewsType: "holiday", AdmissionStatus: "contacted"}); errs.HasErrors() {
		t.Errorf("valid enums rejected: %v", errs)
	}
	if errs := v.Validate(&enumProbe{NewsType: "gossip"}); !errs.HasErrors() {
		t.Error("unknown news type accepted")
	}
	if errs := v.Validate(&enumProbe{AdmissionStatus: "lost"}); !errs.HasErrors() {
		t.Error("unknown admission status accepted")
	}
}

func TestValidator_StructuredErrors(t *testing.T) {
	v := New()

	errs := v.Validate(&classProbe{Class: "13"})
	if !errs.HasErrors() {
		t.Fatal("expected a validation failure")
	}
	if errs[0].Field != "Class" || errs[0].Rule != "class_level" {
		t.Errorf("error = %+v, want field Class rule class_level", errs[0])
	}
	if errs[0].Message != "is not a recognised class" {
		t.Errorf("Message = %q", errs[0].Message)
	}
}
