package portfolio

import (
	"fmt"
	"math"
	"strings"
	"time"

	"zenfolio/internal/models"
)

// maxEpochMillis is the largest instant a JavaScript Date can hold
const maxEpochMillis = 8.64e15

// FormatISO renders epoch milliseconds in the toISOString shape,
// e.g. 2026-02-01T05:51:24.923Z. Years outside 0..9999 use the
// six digit signed form.
func FormatISO(ms float64) (string, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return "", models.ErrInvalidTimestamp
	}
	t := time.UnixMilli(int64(math.Trunc(ms))).UTC()

	rest := t.Format("-01-02T15:04:05.000Z")
	year := t.Year()
	switch {
	case year < 0:
		return fmt.Sprintf("-%06d%s", -year, rest), nil
	case year > 9999:
		return fmt.Sprintf("+%06d%s", year, rest), nil
	default:
		return fmt.Sprintf("%04d%s", year, rest), nil
	}
}

// ResolveStatus takes the production readiness, then the latest deployment's,
// and maps it onto a known Status.
func ResolveStatus(raw *models.RawProject) models.Status {
	state := ""
	if prod := raw.Production(); prod != nil {
		state = prod.ReadyState
	}
	if state == "" {
		if latest := raw.LatestDeployment(); latest != nil {
			state = latest.ReadyState
		}
	}
	if state == "" {
		return models.StatusUnknown
	}
	return models.ParseStatus(strings.ToUpper(state))
}

// Normalize maps one raw record to a ProjectData. A missing or out of range
// updatedAt is reported as an InvalidTimestampError rather than defaulted.
func Normalize(raw *models.RawProject) (models.ProjectData, error) {
	if raw.UpdatedAt == nil {
		return models.ProjectData{}, &models.InvalidTimestampError{ProjectID: raw.ID}
	}
	updatedAt, err := FormatISO(*raw.UpdatedAt)
	if err != nil {
		return models.ProjectData{}, &models.InvalidTimestampError{ProjectID: raw.ID, Value: raw.UpdatedAt}
	}

	framework := models.DefaultFramework
	if raw.Framework != nil && *raw.Framework != "" {
		framework = *raw.Framework
	}

	return models.ProjectData{
		ID:        raw.ID,
		Name:      raw.Name,
		URL:       SelectBestURL(raw),
		UpdatedAt: updatedAt,
		Framework: framework,
		Status:    ResolveStatus(raw),
	}, nil
}

// NormalizeAll normalizes every record, stopping at the first error
func NormalizeAll(raws []models.RawProject) ([]models.ProjectData, error) {
	out := make([]models.ProjectData, 0, len(raws))
	for i := range raws {
		p, err := Normalize(&raws[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
