package model

// Patient is one person under care. Field names mirror the persisted JSON
// exactly; the roster blob must round-trip losslessly across sessions.
type Patient struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	DOB       string       `json:"dob"`
	Sex       string       `json:"sex"`
	MRN       string       `json:"mrn"`
	Allergies []string     `json:"allergies"`
	Problems  []string     `json:"problems"`
	Meds      []string     `json:"meds"`
	ICD10     []string     `json:"icd10,omitempty"`
	Vitals    []VitalEntry `json:"vitals"`
	Notes     []Note       `json:"notes"`
}

// VitalEntry is one observation snapshot, immutable once added. Values are
// kept exactly as entered, including compound readings like "120/80".
type VitalEntry struct {
	Date  string `json:"date"`
	HR    string `json:"hr"`
	RR    string `json:"rr"`
	BP    string `json:"bp"`
	SpO2  string `json:"spO2"`
	Notes string `json:"notes"`
}

// PatientPatch is a partial update to a patient. Nil fields are left
// untouched; non-nil list fields replace the whole list.
type PatientPatch struct {
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	DOB       *string   `json:"dob"`
	Sex       *string   `json:"sex"`
	MRN       *string   `json:"mrn"`
	Allergies *[]string `json:"allergies"`
	Problems  *[]string `json:"problems"`
	Meds      *[]string `json:"meds"`
	ICD10     *[]string `json:"icd10"`
}

// Apply merges the patch into the patient.
func (p *PatientPatch) Apply(patient *Patient) {
	if p.FirstName != nil {
		patient.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		patient.LastName = *p.LastName
	}
	if p.DOB != nil {
		patient.DOB = *p.DOB
	}
	if p.Sex != nil {
		patient.Sex = *p.Sex
	}
	if p.MRN != nil {
		patient.MRN = *p.MRN
	}
	if p.Allergies != nil {
		patient.Allergies = *p.Allergies
	}
	if p.Problems != nil {
		patient.Problems = *p.Problems
	}
	if p.Meds != nil {
		patient.Meds = *p.Meds
	}
	if p.ICD10 != nil {
		patient.ICD10 = *p.ICD10
	}
}

type AddVitalRequest struct {
	Date  string `json:"date" binding:"required"`
	HR    string `json:"hr"`
	RR    string `json:"rr"`
	BP    string `json:"bp"`
	SpO2  string `json:"spO2"`
	Notes string `json:"notes"`
}

func (r *AddVitalRequest) Entry() VitalEntry {
	return VitalEntry{
		Date:  r.Date,
		HR:    r.HR,
		RR:    r.RR,
		BP:    r.BP,
		SpO2:  r.SpO2,
		Notes: r.Notes,
	}
}

// ListItemRequest carries one free-text value for a list append. Blank
// values are accepted and silently ignored downstream.
type ListItemRequest struct {
	Value string `json:"value"`
}
