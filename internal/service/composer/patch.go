package composer

import "github.com/chartpro/emr-api/internal/model"

// DraftPatch is a partial update to a draft note. Nil fields and nil
// sections are left untouched.
type DraftPatch struct {
	Date       *string          `json:"date"`
	Author     *string          `json:"author"`
	Role       *string          `json:"role"`
	VisitType  *model.VisitType `json:"visitType" binding:"omitempty,visittype"`
	Subjective *SubjectivePatch `json:"subjective"`
	Objective  *ObjectivePatch  `json:"objective"`
	Assessment *string          `json:"assessment"`
	Plan       *PlanPatch       `json:"plan"`
	Signature  *SignaturePatch  `json:"signature"`
}

type SubjectivePatch struct {
	ChiefComplaint   *string `json:"chiefComplaint"`
	PainLocation     *string `json:"painLocation"`
	PainAtRest       *string `json:"painAtRest"`
	PainWithMovement *string `json:"painWithMovement"`
	PainScale        *string `json:"painScale"`
	Other            *string `json:"other"`
}

// ObjectivePatch covers the scalar objective fields; goniometry and MMT
// rows are appended through their own operations.
type ObjectivePatch struct {
	HR           *string `json:"hr"`
	RR           *string `json:"rr"`
	BP           *string `json:"bp"`
	SpO2         *string `json:"spO2"`
	Posture      *string `json:"posture"`
	Observation  *string `json:"observation"`
	SpecialTests *string `json:"specialTests"`
}

type PlanPatch struct {
	Interventions *string `json:"interventions"`
	Frequency     *string `json:"frequency"`
	Duration      *string `json:"duration"`
	Goals         *string `json:"goals"`
	CPT           *string `json:"cpt"`
	Education     *string `json:"education"`
	Precautions   *string `json:"precautions"`
}

type SignaturePatch struct {
	Name         *string `json:"name"`
	Title        *string `json:"title"`
	CosignNeeded *bool   `json:"cosignNeeded"`
	Cosigner     *string `json:"cosigner"`
}

// GoniometryRowInput carries a row as submitted, degrees still text.
type GoniometryRowInput struct {
	Side     model.Side `json:"side" binding:"omitempty,oneof=R L"`
	Joint    string     `json:"joint"`
	Motion   string     `json:"motion"`
	Degrees  string     `json:"degrees"`
	Position string     `json:"position"`
}

// MMTRowInput carries a muscle test row as submitted, grade still text.
type MMTRowInput struct {
	Muscle string     `json:"muscle"`
	Side   model.Side `json:"side" binding:"omitempty,oneof=R L"`
	Grade  string     `json:"grade"`
}

func (p *DraftPatch) apply(n *model.Note) {
	if p.Date != nil {
		n.Date = *p.Date
	}
	if p.Author != nil {
		n.Author = *p.Author
	}
	if p.Role != nil {
		n.Role = *p.Role
	}
	if p.VisitType != nil {
		n.VisitType = *p.VisitType
	}
	if p.Assessment != nil {
		n.Assessment = *p.Assessment
	}
	if p.Subjective != nil {
		p.Subjective.apply(&n.Subjective)
	}
	if p.Objective != nil {
		p.Objective.apply(&n.Objective)
	}
	if p.Plan != nil {
		p.Plan.apply(&n.Plan)
	}
	if p.Signature != nil {
		p.Signature.apply(&n.Signature)
	}
}

func (p *SubjectivePatch) apply(s *model.Subjective) {
	if p.ChiefComplaint != nil {
		s.ChiefComplaint = *p.ChiefComplaint
	}
	if p.PainLocation != nil {
		s.PainLocation = *p.PainLocation
	}
	if p.PainAtRest != nil {
		s.PainAtRest = *p.PainAtRest
	}
	if p.PainWithMovement != nil {
		s.PainWithMovement = *p.PainWithMovement
	}
	if p.PainScale != nil {
		s.PainScale = *p.PainScale
	}
	if p.Other != nil {
		s.Other = *p.Other
	}
}

func (p *ObjectivePatch) apply(o *model.Objective) {
	if p.HR != nil {
		o.HR = *p.HR
	}
	if p.RR != nil {
		o.RR = *p.RR
	}
	if p.BP != nil {
		o.BP = *p.BP
	}
	if p.SpO2 != nil {
		o.SpO2 = *p.SpO2
	}
	if p.Posture != nil {
		o.Posture = *p.Posture
	}
	if p.Observation != nil {
		o.Observation = *p.Observation
	}
	if p.SpecialTests != nil {
		o.SpecialTests = *p.SpecialTests
	}
}

func (p *PlanPatch) apply(pl *model.Plan) {
	if p.Interventions != nil {
		pl.Interventions = *p.Interventions
	}
	if p.Frequency != nil {
		pl.Frequency = *p.Frequency
	}
	if p.Duration != nil {
		pl.Duration = *p.Duration
	}
	if p.Goals != nil {
		pl.Goals = *p.Goals
	}
	if p.CPT != nil {
		pl.CPT = *p.CPT
	}
	if p.Education != nil {
		pl.Education = *p.Education
	}
	if p.Precautions != nil {
		pl.Precautions = *p.Precautions
	}
}

func (p *SignaturePatch) apply(sig *model.Signature) {
	if p.Name != nil {
		sig.Name = *p.Name
	}
	if p.Title != nil {
		sig.Title = *p.Title
	}
	if p.CosignNeeded != nil {
		sig.CosignNeeded = *p.CosignNeeded
	}
	if p.Cosigner != nil {
		sig.Cosigner = *p.Cosigner
	}
}
