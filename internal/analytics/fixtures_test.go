package analytics

import (
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func rangeOver(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: &start, End: &end}
}
