// backend-go/internal/domain/models.go
package domain

import "time"

// Pallet represents one bulk inventory purchase (liquidation pallet, storage
// unit, wholesale lot, ...). Items reference it for cost allocation.
type Pallet struct {
	ID           int64      `json:"id" db:"id"`
	OriginalID   string     `json:"-" db:"original_id"`
	Name         string     `json:"name" db:"name"`
	Supplier     *string    `json:"supplier" db:"supplier"`
	SourceType   SourceType `json:"source_type" db:"source_type"`
	SourceName   *string    `json:"source_name" db:"source_name"`
	PurchaseCost float64    `json:"purchase_cost" db:"purchase_cost"`
	SalesTax     *float64   `json:"sales_tax" db:"sales_tax"`
	PurchaseDate *time.Time `json:"purchase_date" db:"purchase_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Item is a single unit of inventory. PalletID is nil for individually
// sourced items; AllocatedCost is the pallet cost apportioned to this item
// and takes precedence over PurchaseCost wherever both are set.
type Item struct {
	ID            int64      `json:"id" db:"id"`
	OriginalID    string     `json:"-" db:"original_id"`
	PalletID      *int64     `json:"pallet_id" db:"pallet_id"`
	Name          string     `json:"name" db:"name"`
	Status        ItemStatus `json:"status" db:"status"`
	RetailPrice   *float64   `json:"retail_price" db:"retail_price"`
	ListingPrice  *float64   `json:"listing_price" db:"listing_price"`
	SalePrice     *float64   `json:"sale_price" db:"sale_price"`
	PurchaseCost  *float64   `json:"purchase_cost" db:"purchase_cost"`
	AllocatedCost *float64   `json:"allocated_cost" db:"allocated_cost"`
	Platform      *string    `json:"platform" db:"platform"`
	PlatformFee   *float64   `json:"platform_fee" db:"platform_fee"`
	ShippingCost  *float64   `json:"shipping_cost" db:"shipping_cost"`
	ListingDate   *time.Time `json:"listing_date" db:"listing_date"`
	SaleDate      *time.Time `json:"sale_date" db:"sale_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Expense is an overhead cost. When linked to more than one pallet the amount
// is apportioned evenly across the linked pallets.
type Expense struct {
	ID          int64           `json:"id" db:"id"`
	OriginalID  string          `json:"-" db:"original_id"`
	Description string          `json:"description" db:"description"`
	Amount      float64         `json:"amount" db:"amount"`
	Category    ExpenseCategory `json:"category" db:"category"`
	ExpenseDate *time.Time      `json:"expense_date" db:"expense_date"`
	PalletIDs   []int64         `json:"pallet_ids" db:"-"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// MileageTrip records sourcing/shipping mileage. Rate is the deduction rate
// in effect at the time of the trip, not a global constant.
type MileageTrip struct {
	ID         int64      `json:"id" db:"id"`
	OriginalID string     `json:"-" db:"original_id"`
	TripDate   *time.Time `json:"trip_date" db:"trip_date"`
	Miles      float64    `json:"miles" db:"miles"`
	Rate       float64    `json:"mileage_rate" db:"mileage_rate"`
	Purpose    string     `json:"purpose" db:"purpose"`
	PalletIDs  []int64    `json:"pallet_ids" db:"-"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// DateRange bounds an analytics query. Both bounds nil means no filtering
// (lifetime view); either bound present switches period semantics on.
type DateRange struct {
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	Preset string     `json:"preset,omitempty"`
}

// IsZero reports whether the range has neither bound set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// LedgerSnapshot bundles the four raw record collections the analytics
// functions consume. This is what the cache stores; computed metrics are
// never cached.
type LedgerSnapshot struct {
	Pallets  []Pallet      `json:"pallets"`
	Items    []Item        `json:"items"`
	Expenses []Expense     `json:"expenses"`
	Trips    []MileageTrip `json:"trips"`
}

// LedgerFacets lists the distinct values the UI offers as filter choices.
type LedgerFacets struct {
	Suppliers   []string `json:"suppliers"`
	SourceTypes []string `json:"source_types"`
	PalletTypes []string `json:"pallet_types"`
	Platforms   []string `json:"platforms"`
}
