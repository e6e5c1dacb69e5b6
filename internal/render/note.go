// Package render produces the printable SOAP document and the roster
// export. Everything here is pure: callers own delivery (print dialog,
// download) and disposal.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/chartpro/emr-api/internal/model"
)

var noteTmpl = template.Must(template.New("note").Funcs(template.FuncMap{
	"orDash":  orDash,
	"degrees": formatDegrees,
}).Parse(`<html><head><title>SOAP Note - {{.Patient.LastName}}, {{.Patient.FirstName}}</title>
<style>body{font-family:ui-sans-serif,system-ui,Arial;padding:24px} h1{font-size:20px;margin:0 0 8px} h2{font-size:14px;margin:16px 0 8px} .box{border:1px solid #ddd;padding:12px;border-radius:8px;margin:8px 0}</style>
</head><body>
<h1>SOAP Note — {{.Patient.LastName}}, {{.Patient.FirstName}} (MRN: {{.Patient.MRN}})</h1>
<div>Date: {{.Note.Date}} | Author: {{.Note.Author}} ({{.Note.Role}}) | Visit: {{.Note.VisitType}}</div>
<h2>Subjective</h2><div class="box">CC: {{.Note.Subjective.ChiefComplaint}}<br/>Pain Location: {{.Note.Subjective.PainLocation}}<br/>Pain (rest/move): {{orDash .Note.Subjective.PainAtRest}}/10, {{orDash .Note.Subjective.PainWithMovement}}/10<br/>Other: {{.Note.Subjective.Other}}</div>
<h2>Objective</h2><div class="box">Vitals: HR {{orDash .Note.Objective.HR}}, RR {{orDash .Note.Objective.RR}}, BP {{orDash .Note.Objective.BP}}, SpO2 {{orDash .Note.Objective.SpO2}}<br/>Observation: {{.Note.Objective.Observation}}<br/>Goniometry:<ul>{{range .Note.Objective.Goniometry}}<li>{{.Side}} {{.Joint}} {{.Motion}}: {{degrees .Degrees}}° ({{.Position}})</li>{{end}}</ul>MMT:<ul>{{range .Note.Objective.MMT}}<li>{{.Side}} {{.Muscle}}: {{.Grade}}/5</li>{{end}}</ul>Special Tests: {{.Note.Objective.SpecialTests}}</div>
<h2>Assessment</h2><div class="box">{{.Note.Assessment}}</div>
<h2>Plan</h2><div class="box">Interventions: {{.Note.Plan.Interventions}}<br/>Freq/Duration: {{.Note.Plan.Frequency}} x {{.Note.Plan.Duration}}<br/>Goals: {{.Note.Plan.Goals}}<br/>CPT: {{.Note.Plan.CPT}}<br/>Education: {{.Note.Plan.Education}}<br/>Precautions: {{.Note.Plan.Precautions}}</div>
<div>Signature: {{.Note.Signature.Name}}, {{.Note.Signature.Title}}{{if .Note.Signature.CosignNeeded}} (Co-sign required){{end}}</div>
</body></html>`))

// NoteDocument renders a self-contained printable HTML document for one
// note. Absent optional fields render as empty text or a dash; the
// function never fails on missing data.
func NoteDocument(patient *model.Patient, note *model.Note) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Patient *model.Patient
		Note    *model.Note
	}{patient, note}
	if err := noteTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render note document: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDegrees(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
