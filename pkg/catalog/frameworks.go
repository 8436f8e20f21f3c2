package catalog

// Well-known framework codes. The store is free to hold frameworks beyond
// this list; these constants exist for the ones the resolver and importers
// treat specially.
const (
	// FrameworkSCF is the central taxonomy. Every mapping edge pairs an
	// SCF control with a control in some other framework.
	FrameworkSCF = "SCF"

	FrameworkNISTCSF  = "NIST-CSF"
	FrameworkNIST853  = "NIST-800-53"
	FrameworkNIST171  = "NIST-800-171"
	FrameworkISO27001 = "ISO-27001"
	FrameworkISO27002 = "ISO-27002"
	FrameworkISO42001 = "ISO-42001"
	FrameworkPCIDSS   = "PCI-DSS"
	FrameworkCIS      = "CIS"
	FrameworkSOC2     = "SOC2"
	FrameworkHIPAA    = "HIPAA"
	FrameworkGDPR     = "GDPR"
)

// KnownFrameworkCodes returns the framework codes this build ships
// hierarchy pattern support or label tables for.
func KnownFrameworkCodes() []string {
	return []string{
		FrameworkSCF,
		FrameworkNISTCSF,
		FrameworkNIST853,
		FrameworkNIST171,
		FrameworkISO27001,
		FrameworkISO27002,
		FrameworkISO42001,
		FrameworkPCIDSS,
		FrameworkCIS,
		FrameworkSOC2,
		FrameworkHIPAA,
		FrameworkGDPR,
	}
}
