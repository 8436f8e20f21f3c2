package hierarchy

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

func TestResolvePathPatterns(t *testing.T) {
	tests := []struct {
		name      string
		framework string
		refCode   string
		want      []string
	}{
		// NIST CSF style
		{"csf function", catalog.FrameworkNISTCSF, "GV", []string{"GV"}},
		{"csf category", catalog.FrameworkNISTCSF, "GV.RM", []string{"GV", "GV.RM"}},
		{"csf control", catalog.FrameworkNISTCSF, "GV.RM-01", []string{"GV", "GV.RM", "GV.RM-01"}},
		// NIST 800-53 style
		{"853 family", catalog.FrameworkNIST853, "AC", []string{"AC"}},
		{"853 three letter family", catalog.FrameworkNIST853, "SCP", []string{"SCP"}},
		{"853 control", catalog.FrameworkNIST853, "AC-2", []string{"AC", "AC-2"}},
		{"853 enhancement", catalog.FrameworkNIST853, "AC-2(1)", []string{"AC", "AC-2", "AC-2(1)"}},
		// ISO Annex A style
		{"iso annex clause", catalog.FrameworkISO27001, "A.5", []string{"A.5"}},
		{"iso annex objective", catalog.FrameworkISO27001, "A.5.1", []string{"A.5", "A.5.1"}},
		{"iso annex control", catalog.FrameworkISO27001, "A.5.1.1", []string{"A.5", "A.5.1", "A.5.1.1"}},
		// Numeric clause style
		{"numeric root", catalog.FrameworkPCIDSS, "1", []string{"1"}},
		{"numeric requirement", catalog.FrameworkPCIDSS, "1.1", []string{"1", "1.1"}},
		{"numeric sub requirement", catalog.FrameworkPCIDSS, "1.1.1", []string{"1", "1.1", "1.1.1"}},
		// ISO lettered sub-items
		{"iso lettered item", catalog.FrameworkISO27001, "4.1(a)", []string{"4", "4.1", "4.1(a)"}},
		{"iso numbered sub item", catalog.FrameworkISO27001, "4.1(a)(1)", []string{"4", "4.1", "4.1(a)", "4.1(a)(1)"}},
		{"iso deep lettered item", catalog.FrameworkISO27001, "9.2.1(b)", []string{"9", "9.2", "9.2.1", "9.2.1(b)"}},
		// Fallback
		{"unrecognized code", catalog.FrameworkHIPAA, "164.308(a)(1)(i)", []string{"164.308(a)(1)(i)"}},
		{"free text code", catalog.FrameworkGDPR, "Art. 32", []string{"Art. 32"}},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.framework, tt.refCode)
			if !reflect.DeepEqual(got.Segments, tt.want) {
				t.Errorf("Resolve(%q, %q) segments = %v, want %v", tt.framework, tt.refCode, got.Segments, tt.want)
			}
			for _, seg := range got.Segments {
				if got.Labels[seg] == "" {
					t.Errorf("Resolve(%q, %q) missing label for segment %q", tt.framework, tt.refCode, seg)
				}
			}
		})
	}
}

func TestResolveDeterminism(t *testing.T) {
	r := NewResolver()
	codes := []string{"GV.RM-01", "AC-2(1)", "A.5.1.1", "1.1.1", "totally unknown"}

	for _, code := range codes {
		first := r.Resolve(catalog.FrameworkNISTCSF, code)
		second := r.Resolve(catalog.FrameworkNISTCSF, code)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Resolve(%q) not deterministic: %v vs %v", code, first, second)
		}
	}
}

func TestResolveGroupLabels(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(catalog.FrameworkNISTCSF, "GV.RM-01")
	if got.Labels["GV"] != "Govern" {
		t.Errorf("label for GV = %q, want %q", got.Labels["GV"], "Govern")
	}
	if got.Labels["GV.RM"] != "Risk Management Strategy" {
		t.Errorf("label for GV.RM = %q, want %q", got.Labels["GV.RM"], "Risk Management Strategy")
	}

	got = r.Resolve(catalog.FrameworkNIST853, "AC-2")
	if got.Labels["AC"] != "Access Control" {
		t.Errorf("label for AC = %q, want %q", got.Labels["AC"], "Access Control")
	}

	// Unknown segments fall back to the code itself
	got = r.Resolve(catalog.FrameworkPCIDSS, "1.1")
	if got.Labels["1"] != "1" {
		t.Errorf("label for 1 = %q, want %q", got.Labels["1"], "1")
	}
}

func TestResolveFrameworkScopedLabels(t *testing.T) {
	r := NewResolver()

	// The NIST CSF function table must not leak into other frameworks:
	// "ID" is also a plausible code elsewhere.
	got := r.Resolve(catalog.FrameworkPCIDSS, "ID")
	if got.Labels["ID"] != "ID" {
		t.Errorf("label for ID outside NIST CSF = %q, want %q", got.Labels["ID"], "ID")
	}
}

func TestRegisterPatterns(t *testing.T) {
	r := NewResolver()
	r.RegisterPatterns("CUSTOM", []pathPattern{
		{regexp.MustCompile(`^([A-Z]+)/\d+$`), func(ref string, m []string) []string {
			return []string{m[1], ref}
		}},
	})

	got := r.Resolve("CUSTOM", "SEC/42")
	want := []string{"SEC", "SEC/42"}
	if !reflect.DeepEqual(got.Segments, want) {
		t.Errorf("custom pattern segments = %v, want %v", got.Segments, want)
	}

	// Other frameworks still use the default table
	got = r.Resolve(catalog.FrameworkNIST853, "AC-2")
	if !reflect.DeepEqual(got.Segments, []string{"AC", "AC-2"}) {
		t.Errorf("default table broken by override: %v", got.Segments)
	}
}
