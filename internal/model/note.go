package model

type VisitType string

const (
	VisitTypeEvaluation VisitType = "Evaluation"
	VisitTypeReEval     VisitType = "Re-Eval"
	VisitTypeTreatment  VisitType = "Treatment"
	VisitTypeDischarge  VisitType = "Discharge"
)

type Side string

const (
	SideRight Side = "R"
	SideLeft  Side = "L"
)

// Note is one SOAP encounter record. Identity is assigned at creation and
// the note is append-only once saved; there is no edit-after-save.
type Note struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	Author     string     `json:"author"`
	Role       string     `json:"role"`
	VisitType  VisitType  `json:"visitType"`
	Subjective Subjective `json:"subjective"`
	Objective  Objective  `json:"objective"`
	Assessment string     `json:"assessment"`
	Plan       Plan       `json:"plan"`
	Signature  Signature  `json:"signature"`
}

type Subjective struct {
	ChiefComplaint   string `json:"chiefComplaint"`
	PainLocation     string `json:"painLocation"`
	PainAtRest       string `json:"painAtRest"`
	PainWithMovement string `json:"painWithMovement"`
	PainScale        string `json:"painScale"`
	Other            string `json:"other"`
}

type Objective struct {
	HR           string          `json:"hr"`
	RR           string          `json:"rr"`
	BP           string          `json:"bp"`
	SpO2         string          `json:"spO2"`
	Posture      string          `json:"posture"`
	Observation  string          `json:"observation"`
	Goniometry   []GoniometryRow `json:"goniometry"`
	MMT          []MMTRow        `json:"mmt"`
	SpecialTests string          `json:"specialTests"`
}

// GoniometryRow is one joint range-of-motion measurement.
type GoniometryRow struct {
	Side     Side    `json:"side"`
	Joint    string  `json:"joint"`
	Motion   string  `json:"motion"`
	Degrees  float64 `json:"degrees"`
	Position string  `json:"position"`
}

// MMTRow is one manual muscle test, graded 0-5.
type MMTRow struct {
	Muscle string `json:"muscle"`
	Side   Side   `json:"side"`
	Grade  int    `json:"grade"`
}

type Plan struct {
	Interventions string `json:"interventions"`
	Frequency     string `json:"frequency"`
	Duration      string `json:"duration"`
	Goals         string `json:"goals"`
	CPT           string `json:"cpt"`
	Education     string `json:"education"`
	Precautions   string `json:"precautions"`
}

type Signature struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	CosignNeeded bool   `json:"cosignNeeded"`
	Cosigner     string `json:"cosigner"`
}
