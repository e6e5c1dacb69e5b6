package model

import "github.com/google/uuid"

// SeedPatients returns the teaching roster loaded on first run, when the
// store holds no roster blob yet.
func SeedPatients() []Patient {
	return []Patient{
		{
			ID:        uuid.NewString(),
			FirstName: "Lili",
			LastName:  "Hiswan",
			DOB:       "2017-02-15",
			Sex:       "F",
			MRN:       "LH-01234",
			Allergies: []string{"NKDA"},
			Problems:  []string{"Right wrist pain (2 months)", "Activity intolerance"},
			Meds:      []string{},
			Vitals: []VitalEntry{
				{Date: "2025-08-01", HR: "72", RR: "16", BP: "118/74", SpO2: "99", Notes: "Baseline well"},
				{Date: "2025-08-04", HR: "70", RR: "14", BP: "125/80", SpO2: "99", Notes: "Clinic intake"},
			},
			Notes: []Note{
				{
					ID:        uuid.NewString(),
					Date:      "2025-08-04",
					Author:    "Ellie H.",
					Role:      "SPTA",
					VisitType: VisitTypeEvaluation,
					Subjective: Subjective{
						ChiefComplaint:   "Pain in right wrist with flexion",
						PainLocation:     "Right wrist",
						PainAtRest:       "3",
						PainWithMovement: "5",
						PainScale:        "5",
						Other:            "Parent states pain x~2 months; episodes severe enough to cry",
					},
					Objective: Objective{
						HR: "70", RR: "14", BP: "125/80", SpO2: "99",
						Posture:     "NA",
						Observation: "Localized tenderness",
						Goniometry: []GoniometryRow{
							{Side: SideRight, Joint: "Wrist", Motion: "Flexion", Degrees: 20, Position: "Seated, elbow flexed 90°"},
						},
						MMT: []MMTRow{
							{Muscle: "Wrist flexors", Side: SideRight, Grade: 2},
						},
						SpecialTests: "NA",
					},
					Assessment: "Findings consistent with right wrist pain; decreased ROM and strength. PT indicated.",
					Plan: Plan{
						Interventions: "Gentle AAROM, pain management education, activity modification",
						Frequency:     "2x/week",
						Duration:      "4 weeks",
						Goals:         "Increase wrist flexion to ≥45°, reduce pain to ≤2/10 with ADLs",
						CPT:           "97110, 97530",
						Education:     "Pain scale use; joint protection",
						Precautions:   "If pain acutely worsens, stop and notify provider",
					},
					Signature: Signature{Name: "Ellie H.", Title: "SPTA", CosignNeeded: true, Cosigner: "CI"},
				},
			},
		},
		{
			ID:        uuid.NewString(),
			FirstName: "John",
			LastName:  "Smith",
			DOB:       "1959-09-14",
			Sex:       "M",
			MRN:       "JS-00959",
			Allergies: []string{"Penicillin"},
			Problems:  []string{"R CVA with L hemiparesis (2024)", "HTN"},
			Meds:      []string{"Lisinopril"},
			Vitals: []VitalEntry{
				{Date: "2025-07-28", HR: "78", RR: "18", BP: "132/82", SpO2: "98", Notes: "Baseline"},
			},
			Notes: []Note{},
		},
	}
}
