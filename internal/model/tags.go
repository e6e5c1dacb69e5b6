package model

// GlobalTags is the process-wide tag list, persisted independently of the
// roster. The ICD list is carried for round-trip fidelity with stored blobs
// but has no operations yet.
type GlobalTags struct {
	ICD []string `json:"icd"`
	CPT []string `json:"cpt"`
}

// DefaultTags is the fallback used when the stored tags blob is missing or
// unreadable.
func DefaultTags() GlobalTags {
	return GlobalTags{ICD: []string{}, CPT: []string{}}
}

// VitalFlag is one advisory red-flag threshold. These are documentation
// shown on the admin surface, not computed alerts.
type VitalFlag struct {
	Vital     string `json:"vital"`
	Threshold string `json:"threshold"`
}

func RedFlagThresholds() []VitalFlag {
	return []VitalFlag{
		{Vital: "BP", Threshold: "systolic > 180 or diastolic > 110"},
		{Vital: "HR", Threshold: "< 50 or > 120"},
		{Vital: "SpO2", Threshold: "< 92%"},
	}
}
