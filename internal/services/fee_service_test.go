package services

import (
	"errors"
	"testing"

	"github.com/jrc-public-school/school-service/internal/validator"
)

func TestFeeService_Calculate(t *testing.T) {
	service := NewFeeService(newTestLogger(), validator.New())

	tests := []struct {
		name          string
		class         string
		transport     string
		wantBase      float64
		wantTransport float64
		wantTotal     float64
	}{
		{name: "nursery no transport", class: "Nursery", transport: "no", wantBase: 15000, wantTransport: 0, wantTotal: 15000},
		{name: "primary far", class: "3", transport: "far", wantBase: 17000, wantTransport: 6000, wantTotal: 23000},
		{name: "band key primary far", class: "primary", transport: "far", wantBase: 17000, wantTransport: 6000, wantTotal: 23000},
		{name: "band key nursery", class: "nursery", transport: "no", wantBase: 15000, wantTransport: 0, wantTotal: 15000},
		{name: "band key senior near", class: "senior", transport: "near", wantBase: 25000, wantTransport: 4000, wantTotal: 29000},
		{name: "middle near", class: "7", transport: "near", wantBase: 19500, wantTransport: 4000, wantTotal: 23500},
		{name: "high with stream suffix", class: "9-Science", transport: "no", wantBase: 22000, wantTransport: 0, wantTotal: 22000},
		{name: "senior commerce", class: "12-Commerce", transport: "far", wantBase: 25000, wantTransport: 6000, wantTotal: 31000},
		{name: "unknown transport falls back to none", class: "5", transport: "helicopter", wantBase: 17000, wantTransport: 0, wantTotal: 17000},
		{name: "empty transport means none", class: "10", transport: "", wantBase: 22000, wantTransport: 0, wantTotal: 22000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Calculate(&FeeCalculateRequest{Class: tt.class, Transport: tt.transport})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.BaseFee != tt.wantBase {
				t.Errorf("BaseFee = %v, want %v", got.BaseFee, tt.wantBase)
			}
			if got.TransportFee != tt.wantTransport {
				t.Errorf("TransportFee = %v, want %v", got.TransportFee, tt.wantTransport)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestFeeService_Calculate_Breakdown(t *testing.T) {
	service := NewFeeService(newTestLogger(), validator.New())

	got, err := service.Calculate(&FeeCalculateRequest{Class: "3", Transport: "far"})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// The tuition/other split applies to the base fee only, not transport.
	if got.Breakdown.Tuition != 14450 {
		t.Errorf("Breakdown.Tuition = %v, want 14450", got.Breakdown.Tuition)
	}
	if got.Breakdown.OtherCharges != 2550 {
		t.Errorf("Breakdown.OtherCharges = %v, want 2550", got.Breakdown.OtherCharges)
	}
}

func TestFeeService_Calculate_UnknownClass(t *testing.T) {
	service := NewFeeService(newTestLogger(), validator.New())

	_, err := service.Calculate(&FeeCalculateRequest{Class: "13", Transport: "no"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Calculate() error = %v, want ErrValidationFailed", err)
	}
}

func TestFeeService_Structure(t *testing.T) {
	service := NewFeeService(newTestLogger(), validator.New())

	structure := service.Structure()
	if len(structure.Schedule) != 5 {
		t.Fatalf("Schedule has %d entries, want 5", len(structure.Schedule))
	}

	// Bands are ordered from nursery to senior.
	wantGroups := []string{"nursery", "primary", "middle", "high", "senior"}
	wantFees := []float64{15000, 17000, 19500, 22000, 25000}
	for i, entry := range structure.Schedule {
		if entry.Group != wantGroups[i] {
			t.Errorf("Schedule[%d].Group = %v, want %v", i, entry.Group, wantGroups[i])
		}
		if entry.Annual != wantFees[i] {
			t.Errorf("Schedule[%d].Annual = %v, want %v", i, entry.Annual, wantFees[i])
		}
	}

	if structure.Transport["far"] != 6000 {
		t.Errorf(`Transport["far"] = %v, want 6000`, structure.Transport["far"])
	}
}
