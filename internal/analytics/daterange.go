package analytics

import (
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// Dated extracts the date a record is filtered on. A nil result excludes the
// record from any bounded filter.
type Dated[T any] func(T) *time.Time

// normalizeDay truncates a timestamp to midnight local time so time-of-day
// and timezone offsets cannot push a record across a range boundary.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FilterByDate returns the records whose date falls within the range,
// inclusive on both ends. A range with neither bound is an identity filter.
// Records without a date are excluded from any bounded filter; malformed
// input never raises an error, exclusion is the failure mode.
func FilterByDate[T any](records []T, r domain.DateRange, dateOf Dated[T]) []T {
	if r.IsZero() {
		return records
	}

	var start, end time.Time
	if r.Start != nil {
		start = normalizeDay(*r.Start)
	}
	if r.End != nil {
		end = normalizeDay(*r.End)
	}

	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		d := dateOf(rec)
		if d == nil {
			continue
		}
		day := normalizeDay(*d)
		if r.Start != nil && day.Before(start) {
			continue
		}
		if r.End != nil && day.After(end) {
			continue
		}
		filtered = append(filtered, rec)
	}

	return filtered
}

// ResolvePreset expands a named date preset into a concrete range relative to
// asOf. Unknown or empty presets resolve to the unbounded lifetime range.
func ResolvePreset(preset string, asOf time.Time) domain.DateRange {
	today := normalizeDay(asOf)

	switch preset {
	case "today":
		return boundedRange(today, today, preset)
	case "last7days":
		return boundedRange(today.AddDate(0, 0, -6), today, preset)
	case "last30days":
		return boundedRange(today.AddDate(0, 0, -29), today, preset)
	case "thisMonth":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return boundedRange(first, today, preset)
	case "lastMonth":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		first := firstOfThis.AddDate(0, -1, 0)
		return boundedRange(first, firstOfThis.AddDate(0, 0, -1), preset)
	case "thisYear":
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return boundedRange(first, today, preset)
	}

	return domain.DateRange{Preset: preset}
}

func boundedRange(start, end time.Time, preset string) domain.DateRange {
	return domain.DateRange{Start: &start, End: &end, Preset: preset}
}
