package models

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one sample row of an uploaded table. Field order is kept exactly as
// the server sent it; values stay raw JSON so nothing is reinterpreted.
type Row = *orderedmap.OrderedMap[string, json.RawMessage]

// DataUpload is the result of uploading a tabular file.
type DataUpload struct {
	Filename string `json:"filename"`
	Preview  []Row  `json:"preview"`
}

// ChartSpec describes one server-generated chart. Data holds a JSON plot
// definition with "data" and "layout" members.
type ChartSpec struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Data  string `json:"data"`
}

// PlotDefinition is the parsed form of ChartSpec.Data.
type PlotDefinition struct {
	Data   json.RawMessage `json:"data"`
	Layout json.RawMessage `json:"layout"`
}

// Plot parses the embedded plot definition.
func (c ChartSpec) Plot() (PlotDefinition, error) {
	var p PlotDefinition
	if err := json.Unmarshal([]byte(c.Data), &p); err != nil {
		return PlotDefinition{}, err
	}
	return p, nil
}

// DataSession points at the most recently uploaded tabular file. Chart,
// insight and question requests are scoped to it.
type DataSession struct {
	CurrentFile string
}

// Active reports whether a file has been uploaded.
func (d *DataSession) Active() bool {
	return d != nil && d.CurrentFile != ""
}
