package storage

import (
	"encoding/json"
	"io"

	"github.com/JJonas1998/Projekt-9/internal/analysis"
	"github.com/JJonas1998/Projekt-9/internal/config"
	"github.com/JJonas1998/Projekt-9/internal/sim"
)

// ExportData is the self-contained JSON form of a run, for handing to
// external plotting tools.
type ExportData struct {
	Config       *config.Config   `json:"config"`
	Metrics      analysis.Metrics `json:"metrics"`
	Steps        int              `json:"steps"`
	Controlled   []sim.Sample     `json:"controlled"`
	Uncontrolled []sim.Sample     `json:"uncontrolled"`
}

func ExportJSON(w io.Writer, cfg *config.Config, result *sim.Result, metrics analysis.Metrics) error {
	data := ExportData{
		Config:       cfg,
		Metrics:      metrics,
		Steps:        len(result.Controlled),
		Controlled:   result.Controlled,
		Uncontrolled: result.Uncontrolled,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
