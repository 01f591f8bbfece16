package domain

import "strings"

// ItemStatus tracks an item through the listing lifecycle.
type ItemStatus string

const (
	StatusUnlisted ItemStatus = "unlisted"
	StatusListed   ItemStatus = "listed"
	StatusSold     ItemStatus = "sold"
)

// SourceType classifies where a pallet was bought.
type SourceType string

const (
	SourceLiquidation SourceType = "liquidation"
	SourceMysteryBox  SourceType = "mystery_box"
	SourceStorageUnit SourceType = "storage_unit"
	SourceWholesale   SourceType = "wholesale"
	SourceRetail      SourceType = "retail_arbitrage"
	SourceOther       SourceType = "other"
)

// ExpenseCategory classifies an overhead expense.
type ExpenseCategory string

const (
	ExpenseSupplies      ExpenseCategory = "supplies"
	ExpenseStorage       ExpenseCategory = "storage"
	ExpenseSubscriptions ExpenseCategory = "subscriptions"
	ExpenseEquipment     ExpenseCategory = "equipment"
	ExpenseMileage       ExpenseCategory = "mileage"
	ExpenseGas           ExpenseCategory = "gas"
	ExpenseFees          ExpenseCategory = "fees"
	ExpenseShipping      ExpenseCategory = "shipping"
	ExpenseOther         ExpenseCategory = "other"
)

var sourceTypeLabels = map[SourceType]string{
	SourceLiquidation: "Liquidation",
	SourceMysteryBox:  "Mystery Box",
	SourceStorageUnit: "Storage Unit",
	SourceWholesale:   "Wholesale",
	SourceRetail:      "Retail Arbitrage",
	SourceOther:       "Other",
}

var expenseCategoryLabels = map[ExpenseCategory]string{
	ExpenseSupplies:      "Supplies",
	ExpenseStorage:       "Storage",
	ExpenseSubscriptions: "Subscriptions",
	ExpenseEquipment:     "Equipment",
	ExpenseMileage:       "Mileage",
	ExpenseGas:           "Gas",
	ExpenseFees:          "Fees",
	ExpenseShipping:      "Shipping",
	ExpenseOther:         "Other",
}

// Categories mileage/gas/fees/shipping are tracked by their own report
// sections, so they stay out of the operating-expense rollup.
var operatingExpenseCategories = map[ExpenseCategory]bool{
	ExpenseSupplies:      true,
	ExpenseStorage:       true,
	ExpenseSubscriptions: true,
	ExpenseEquipment:     true,
	ExpenseOther:         true,
}

// SourceTypeLabel returns a human-readable label for a source type.
func SourceTypeLabel(st SourceType) string {
	if label, ok := sourceTypeLabels[st]; ok {
		return label
	}

	return "Other"
}

// ParseSourceType returns the source type for a given label or raw value
// (case-insensitive).
func ParseSourceType(s string) (SourceType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch SourceType(normalized) {
	case SourceLiquidation, SourceMysteryBox, SourceStorageUnit, SourceWholesale, SourceRetail, SourceOther:
		return SourceType(normalized), true
	}

	return SourceOther, false
}

// ExpenseCategoryLabel returns a human-readable label for an expense category.
func ExpenseCategoryLabel(c ExpenseCategory) string {
	if label, ok := expenseCategoryLabels[c]; ok {
		return label
	}

	return "Other"
}

// ParseExpenseCategory returns the category for a given label or raw value
// (case-insensitive).
func ParseExpenseCategory(s string) (ExpenseCategory, bool) {
	normalized := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := expenseCategoryLabels[normalized]; ok {
		return normalized, true
	}

	return ExpenseOther, false
}

// ParseItemStatus returns the item status for a raw value (case-insensitive).
func ParseItemStatus(s string) (ItemStatus, bool) {
	switch ItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusUnlisted:
		return StatusUnlisted, true
	case StatusListed:
		return StatusListed, true
	case StatusSold:
		return StatusSold, true
	}

	return StatusUnlisted, false
}

// IsOperatingExpense reports whether the category belongs in the
// operating-expense section of the profit and loss statement.
func (c ExpenseCategory) IsOperatingExpense() bool {
	return operatingExpenseCategories[c]
}
