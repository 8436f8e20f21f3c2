package validation

import (
	"strings"
	"testing"
)

func validRequest() CrosswalkRequest {
	return CrosswalkRequest{
		PrimaryFrameworkID:     "fw-csf",
		ComparisonFrameworkID:  "fw-scf",
		AdditionalFrameworkIDs: []string{"fw-iso", "fw-pci"},
	}
}

func TestValidateCrosswalkRequest(t *testing.T) {
	req := validRequest()
	if err := ValidateCrosswalkRequest(&req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateCrosswalkRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CrosswalkRequest)
		wantMsg string
	}{
		{
			name:    "missing primary",
			mutate:  func(r *CrosswalkRequest) { r.PrimaryFrameworkID = "" },
			wantMsg: "required",
		},
		{
			name:    "primary too long",
			mutate:  func(r *CrosswalkRequest) { r.PrimaryFrameworkID = strings.Repeat("x", 65) },
			wantMsg: "maximum",
		},
		{
			name:    "comparison equals primary",
			mutate:  func(r *CrosswalkRequest) { r.ComparisonFrameworkID = r.PrimaryFrameworkID },
			wantMsg: "must differ",
		},
		{
			name:    "primary repeated in additional",
			mutate:  func(r *CrosswalkRequest) { r.AdditionalFrameworkIDs = []string{"fw-iso", "fw-csf"} },
			wantMsg: "must not include",
		},
		{
			name:    "duplicate additional",
			mutate:  func(r *CrosswalkRequest) { r.AdditionalFrameworkIDs = []string{"fw-iso", "fw-iso"} },
			wantMsg: "duplicate",
		},
		{
			name:    "empty additional entry",
			mutate:  func(r *CrosswalkRequest) { r.AdditionalFrameworkIDs = []string{""} },
			wantMsg: "required",
		},
		{
			name: "too many additional",
			mutate: func(r *CrosswalkRequest) {
				r.AdditionalFrameworkIDs = make([]string, MaxAdditionalFrameworks+1)
				for i := range r.AdditionalFrameworkIDs {
					r.AdditionalFrameworkIDs[i] = "fw-" + strings.Repeat("a", i%10+1)
				}
			},
			wantMsg: "maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := ValidateCrosswalkRequest(&req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateNilRequest(t *testing.T) {
	if err := ValidateCrosswalkRequest(nil); err == nil {
		t.Error("nil request should be rejected")
	}
}
