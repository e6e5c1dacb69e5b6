package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpro/emr-api/internal/model"
)

func rosterFixture() []model.Patient {
	return []model.Patient{
		{ID: "1", FirstName: "Lili", LastName: "Hiswan", MRN: "LH-01234"},
		{ID: "2", FirstName: "John", LastName: "Smith", MRN: "JS-00959"},
		{ID: "3", FirstName: "Maria", LastName: "Hidalgo", MRN: "MH-00001"},
	}
}

func TestFilterPatientsBlankQueryReturnsAll(t *testing.T) {
	roster := rosterFixture()
	assert.Equal(t, roster, FilterPatients(roster, ""))
	assert.Equal(t, roster, FilterPatients(roster, "   "))
}

func TestFilterPatientsMatchesAnyField(t *testing.T) {
	roster := rosterFixture()

	byFirst := FilterPatients(roster, "lili")
	require.Len(t, byFirst, 1)
	assert.Equal(t, "1", byFirst[0].ID)

	byLast := FilterPatients(roster, "HI")
	require.Len(t, byLast, 2, "substring matches Hiswan and Hidalgo")

	byMRN := FilterPatients(roster, "js-00")
	require.Len(t, byMRN, 1)
	assert.Equal(t, "2", byMRN[0].ID)
}

func TestFilterPatientsIsIdempotent(t *testing.T) {
	roster := rosterFixture()
	once := FilterPatients(roster, "hi")
	twice := FilterPatients(once, "hi")
	assert.Equal(t, once, twice)
}

func TestFilterPatientsDoesNotMutateInput(t *testing.T) {
	roster := rosterFixture()
	FilterPatients(roster, "smith")
	assert.Equal(t, rosterFixture(), roster)
}

func TestFilterNotes(t *testing.T) {
	notes := []model.Note{
		{ID: "a", Subjective: model.Subjective{ChiefComplaint: "Wrist pain"}, Assessment: "Improving"},
		{ID: "b", Assessment: "Plateau", Plan: model.Plan{Interventions: "97110 ther ex"}},
		{ID: "c", Subjective: model.Subjective{ChiefComplaint: "Knee pain"}},
	}

	assert.Equal(t, notes, FilterNotes(notes, ""))

	pain := FilterNotes(notes, "PAIN")
	require.Len(t, pain, 2)
	assert.Equal(t, "a", pain[0].ID)
	assert.Equal(t, "c", pain[1].ID)

	cpt := FilterNotes(notes, "97110")
	require.Len(t, cpt, 1)
	assert.Equal(t, "b", cpt[0].ID)
}
