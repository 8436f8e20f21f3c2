package hierarchy

import "github.com/dd0wney/cluso-crosswalk/pkg/catalog"

// Static display names for well-known framework group codes. Leaf labels
// come from the control's own title; these tables only cover inferred
// intermediate levels that have no backing control row.

// NIST CSF 2.0 functions.
var nistCSFFunctions = map[string]string{
	"GV": "Govern",
	"ID": "Identify",
	"PR": "Protect",
	"DE": "Detect",
	"RS": "Respond",
	"RC": "Recover",
}

// NIST CSF 2.0 categories.
var nistCSFCategories = map[string]string{
	"GV.OC": "Organizational Context",
	"GV.RM": "Risk Management Strategy",
	"GV.RR": "Roles, Responsibilities, and Authorities",
	"GV.PO": "Policy",
	"GV.OV": "Oversight",
	"GV.SC": "Cybersecurity Supply Chain Risk Management",
	"ID.AM": "Asset Management",
	"ID.RA": "Risk Assessment",
	"ID.IM": "Improvement",
	"PR.AA": "Identity Management, Authentication and Access Control",
	"PR.AT": "Awareness and Training",
	"PR.DS": "Data Security",
	"PR.PS": "Platform Security",
	"PR.IR": "Technology Infrastructure Resilience",
	"DE.AE": "Anomalies and Events",
	"DE.CM": "Continuous Monitoring",
	"RS.MA": "Incident Management",
	"RS.AN": "Incident Analysis",
	"RS.RP": "Incident Response Reporting and Communication",
	"RS.MI": "Incident Mitigation",
	"RC.RP": "Recovery Planning",
	"RC.CO": "Recovery Communications",
}

// NIST 800-53 rev 5 control families.
var nist853Families = map[string]string{
	"AC": "Access Control",
	"AT": "Awareness and Training",
	"AU": "Audit and Accountability",
	"CA": "Assessment, Authorization, and Monitoring",
	"CM": "Configuration Management",
	"CP": "Contingency Planning",
	"IA": "Identification and Authentication",
	"IR": "Incident Response",
	"MA": "Maintenance",
	"MP": "Media Protection",
	"PE": "Physical and Environmental Protection",
	"PL": "Planning",
	"PM": "Program Management",
	"PS": "Personnel Security",
	"PT": "PII Processing and Transparency",
	"RA": "Risk Assessment",
	"SA": "System and Services Acquisition",
	"SC": "System and Communications Protection",
	"SI": "System and Information Integrity",
	"SR": "Supply Chain Risk Management",
}

// GroupLabel returns the human-readable name for a framework group code,
// falling back to the code itself when no table covers it.
func GroupLabel(frameworkCode, segment string) string {
	switch frameworkCode {
	case catalog.FrameworkNISTCSF:
		if name, ok := nistCSFFunctions[segment]; ok {
			return name
		}
		if name, ok := nistCSFCategories[segment]; ok {
			return name
		}
	case catalog.FrameworkNIST853, catalog.FrameworkNIST171:
		if name, ok := nist853Families[segment]; ok {
			return name
		}
	}
	return segment
}
