package models

// Status is the readiness state shown for a project
type Status string

const (
	StatusReady    Status = "READY"
	StatusError    Status = "ERROR"
	StatusBuilding Status = "BUILDING"
	StatusUnknown  Status = "UNKNOWN"
)

// DefaultFramework is used when the upstream record has no framework
const DefaultFramework = "Other"

// ParseStatus maps an upstream readiness value onto one of the four known states
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusReady, StatusError, StatusBuilding:
		return Status(s)
	}
	return StatusUnknown
}

// Deployment is a deployment entry as reported by the deployments API
type Deployment struct {
	URL        string   `json:"url,omitempty"`
	Alias      []string `json:"alias,omitempty"`
	ReadyState string   `json:"readyState,omitempty"`
}

// Targets holds the per-environment deployment targets of a project
type Targets struct {
	Production *Deployment `json:"production,omitempty"`
}

// RawProject is a project record as returned by the deployments API.
// Every field besides ID and Name is optional upstream.
type RawProject struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Framework         *string      `json:"framework"`
	UpdatedAt         *float64     `json:"updatedAt"`
	Targets           *Targets     `json:"targets,omitempty"`
	Alias             []string     `json:"alias,omitempty"`
	LatestDeployments []Deployment `json:"latestDeployments,omitempty"`
}

// Production returns the production target, or nil
func (p *RawProject) Production() *Deployment {
	if p.Targets == nil {
		return nil
	}
	return p.Targets.Production
}

// LatestDeployment returns the most recent deployment, or nil
func (p *RawProject) LatestDeployment() *Deployment {
	if len(p.LatestDeployments) == 0 {
		return nil
	}
	return &p.LatestDeployments[0]
}

// ProjectData is the display-ready project record
type ProjectData struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	URL       string `json:"url" yaml:"url"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
	Framework string `json:"framework" yaml:"framework"`
	Status    Status `json:"status" yaml:"status"`
}

// CuratedProject is a ProjectData entry of the static portfolio
type CuratedProject struct {
	ProjectData `yaml:",inline"`
	Featured    bool `json:"featured" yaml:"featured"`
}

// Pagination mirrors the pagination block of a projects listing
type Pagination struct {
	Count int    `json:"count"`
	Next  *int64 `json:"next"`
	Prev  *int64 `json:"prev"`
}
