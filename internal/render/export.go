package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chartpro/emr-api/internal/model"
)

// ExportRoster serializes the full roster as indented JSON and names the
// file with the export instant so repeated exports never collide.
func ExportRoster(roster []model.Patient, now time.Time) (filename string, data []byte, err error) {
	data, err = json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize roster: %w", err)
	}
	filename = fmt.Sprintf("chartpro-lite-%s.json", now.UTC().Format(time.RFC3339))
	return filename, data, nil
}
