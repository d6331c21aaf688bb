package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"zenfolio/internal/models"
)

const (
	projectsPath = "/v9/projects"

	// DefaultLimit is the page size used when none is given
	DefaultLimit = 100

	// DefaultMaxPages bounds ListAllProjects
	DefaultMaxPages = 20
)

// ListOptions narrows a projects listing
type ListOptions struct {
	Limit  int
	TeamID string

	// Until requests the page that precedes this cursor (pagination.next)
	Until int64

	// MaxPages bounds ListAllProjects; zero means DefaultMaxPages
	MaxPages int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	if o.TeamID != "" {
		q.Set("teamId", o.TeamID)
	}
	if o.Until > 0 {
		q.Set("until", strconv.FormatInt(o.Until, 10))
	}
	return q
}

// ProjectsPage is one page of a projects listing
type ProjectsPage struct {
	Projects   []models.RawProject
	Pagination models.Pagination
}

// ListProjects fetches one page of projects. It makes a single attempt;
// retrying is up to the caller.
func (c *Client) ListProjects(ctx context.Context, opts ListOptions) (*ProjectsPage, error) {
	body, err := c.get(ctx, projectsPath, opts.query())
	if err != nil {
		return nil, err
	}
	return decodeProjectsPage(body)
}

// ListAllProjects follows pagination.next until the listing is exhausted
// or MaxPages pages were read.
func (c *Client) ListAllProjects(ctx context.Context, opts ListOptions) ([]models.RawProject, error) {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all []models.RawProject
	for page := 0; page < maxPages; page++ {
		result, err := c.ListProjects(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Projects...)

		next := result.Pagination.Next
		if next == nil || *next <= 0 || len(result.Projects) == 0 {
			return all, nil
		}
		opts.Until = *next
	}

	c.logger.Warn("stopped paging projects", zap.Int("max_pages", maxPages), zap.Int("projects", len(all)))
	return all, nil
}

// decodeProjectsPage reads the untrusted listing payload. A missing or
// non-array "projects" key yields an empty page.
func decodeProjectsPage(body []byte) (*ProjectsPage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("error decoding projects: %w", models.ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)

	page := &ProjectsPage{Projects: []models.RawProject{}}
	if projects := root.Get("projects"); projects.IsArray() {
		projects.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				page.Projects = append(page.Projects, decodeRawProject(item))
			}
			return true
		})
	}

	pagination := root.Get("pagination")
	page.Pagination.Count = int(pagination.Get("count").Int())
	page.Pagination.Next = optionalInt(pagination.Get("next"))
	page.Pagination.Prev = optionalInt(pagination.Get("prev"))

	return page, nil
}

func decodeRawProject(r gjson.Result) models.RawProject {
	p := models.RawProject{
		ID:   stringValue(r.Get("id")),
		Name: stringValue(r.Get("name")),
	}

	if fw := r.Get("framework"); fw.Type == gjson.String {
		s := fw.Str
		p.Framework = &s
	}
	if ts := r.Get("updatedAt"); ts.Type == gjson.Number {
		n := ts.Num
		p.UpdatedAt = &n
	}
	if prod := r.Get("targets.production"); prod.IsObject() {
		d := decodeDeployment(prod)
		p.Targets = &models.Targets{Production: &d}
	}

	// only plain host strings are candidates; {"domain": ...} objects are skipped
	p.Alias = stringValues(r.Get("alias"))

	if latest := r.Get("latestDeployments"); latest.IsArray() {
		latest.ForEach(func(_, d gjson.Result) bool {
			if d.IsObject() {
				p.LatestDeployments = append(p.LatestDeployments, decodeDeployment(d))
			}
			return true
		})
	}

	return p
}

func decodeDeployment(r gjson.Result) models.Deployment {
	return models.Deployment{
		URL:        stringValue(r.Get("url")),
		Alias:      stringValues(r.Get("alias")),
		ReadyState: stringValue(r.Get("readyState")),
	}
}

func stringValue(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func stringValues(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
		return true
	})
	return out
}

func optionalInt(r gjson.Result) *int64 {
	if r.Type != gjson.Number {
		return nil
	}
	n := r.Int()
	return &n
}
