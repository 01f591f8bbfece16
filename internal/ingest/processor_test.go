package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want FileKind
	}{
		{"/data/pallets.csv", KindPallets},
		{"pallet_export_2024.csv", KindPallets},
		{"items_2024-03.csv", KindItems},
		{"/tmp/ledger/Item Backup.csv", KindItems},
		{"expenses.csv", KindExpenses},
		{"mileage_trips.csv", KindMileage},
		{"trips_q1.csv", KindMileage},
		{"notes.csv", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindFromFilename(tt.path), tt.path)
	}
}

func TestKindFromHeader(t *testing.T) {
	toColMap := func(cols ...string) map[string]int {
		m := make(map[string]int, len(cols))
		for i, c := range cols {
			m[c] = i
		}
		return m
	}

	assert.Equal(t, KindPallets, kindFromHeader(toColMap("id", "name", "source_type", "purchase_cost")))
	assert.Equal(t, KindItems, kindFromHeader(toColMap("id", "name", "status", "pallet_id", "sale_price")))
	assert.Equal(t, KindExpenses, kindFromHeader(toColMap("id", "category", "amount")))
	assert.Equal(t, KindMileage, kindFromHeader(toColMap("id", "trip_date", "miles", "purpose")))
	assert.Equal(t, KindUnknown, kindFromHeader(toColMap("id", "name")))
}
