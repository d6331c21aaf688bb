// Package catalog holds the curated portfolio shipped with the binary,
// used when no API token is available.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"zenfolio/internal/models"
)

//go:embed curated.yaml
var curatedYAML []byte

type document struct {
	Projects []models.CuratedProject `yaml:"projects"`
}

// Parse decodes a catalog document
func Parse(data []byte) ([]models.CuratedProject, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range doc.Projects {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("parse catalog: entry %d needs an id and a name", i)
		}
		if p.Framework == "" {
			doc.Projects[i].Framework = models.DefaultFramework
		}
		doc.Projects[i].Status = models.ParseStatus(strings.ToUpper(string(p.Status)))
	}
	return doc.Projects, nil
}

// Load returns every entry of the embedded catalog
func Load() ([]models.CuratedProject, error) {
	return Parse(curatedYAML)
}

// Featured returns the ProjectData of the featured entries, in catalog order
func Featured(entries []models.CuratedProject) []models.ProjectData {
	out := make([]models.ProjectData, 0, len(entries))
	for _, e := range entries {
		if e.Featured {
			out = append(out, e.ProjectData)
		}
	}
	return out
}

// Marshal renders entries in the catalog document format
func Marshal(entries []models.CuratedProject) ([]byte, error) {
	return yaml.Marshal(document{Projects: entries})
}
