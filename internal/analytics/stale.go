package analytics

import (
	"sort"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// StaleItems flags unsold listings whose age at asOf meets the threshold,
// oldest first. asOf is injected rather than read from the clock so reports
// and tests pin the same day.
func StaleItems(items []domain.Item, pallets []domain.Pallet, thresholdDays int, asOf time.Time) []domain.StaleItem {
	palletNames := make(map[int64]string, len(pallets))
	for _, p := range pallets {
		palletNames[p.ID] = p.Name
	}

	today := normalizeDay(asOf)

	stale := make([]domain.StaleItem, 0)
	for _, it := range items {
		if it.Status == domain.StatusSold || it.ListingDate == nil {
			continue
		}
		days := int(today.Sub(normalizeDay(*it.ListingDate)).Hours() / 24)
		if days < thresholdDays {
			continue
		}

		row := domain.StaleItem{
			ItemID:       it.ID,
			ItemName:     it.Name,
			PalletID:     it.PalletID,
			DaysListed:   days,
			ListingPrice: it.ListingPrice,
		}
		if it.PalletID != nil {
			if name, ok := palletNames[*it.PalletID]; ok {
				row.PalletName = &name
			}
		}
		stale = append(stale, row)
	}

	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].DaysListed > stale[j].DaysListed
	})

	return stale
}
