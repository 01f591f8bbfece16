package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSourceType(t *testing.T) {
	st, ok := ParseSourceType("Mystery Box")
	assert.True(t, ok)
	assert.Equal(t, SourceMysteryBox, st)

	st, ok = ParseSourceType("  liquidation ")
	assert.True(t, ok)
	assert.Equal(t, SourceLiquidation, st)

	st, ok = ParseSourceType("garage sale")
	assert.False(t, ok)
	assert.Equal(t, SourceOther, st)
}

func TestSourceTypeLabel(t *testing.T) {
	assert.Equal(t, "Retail Arbitrage", SourceTypeLabel(SourceRetail))
	assert.Equal(t, "Mystery Box", SourceTypeLabel(SourceMysteryBox))
	assert.Equal(t, "Other", SourceTypeLabel(SourceType("weird")))
}

func TestParseExpenseCategory(t *testing.T) {
	c, ok := ParseExpenseCategory("Subscriptions")
	assert.True(t, ok)
	assert.Equal(t, ExpenseSubscriptions, c)

	c, ok = ParseExpenseCategory("tithes")
	assert.False(t, ok)
	assert.Equal(t, ExpenseOther, c)
}

func TestParseItemStatus(t *testing.T) {
	s, ok := ParseItemStatus(" SOLD ")
	assert.True(t, ok)
	assert.Equal(t, StatusSold, s)

	s, ok = ParseItemStatus("returned")
	assert.False(t, ok)
	assert.Equal(t, StatusUnlisted, s)
}

func TestIsOperatingExpense(t *testing.T) {
	assert.True(t, ExpenseSupplies.IsOperatingExpense())
	assert.True(t, ExpenseStorage.IsOperatingExpense())
	assert.True(t, ExpenseSubscriptions.IsOperatingExpense())
	assert.True(t, ExpenseEquipment.IsOperatingExpense())
	assert.True(t, ExpenseOther.IsOperatingExpense())

	// These roll up under their own statement sections.
	assert.False(t, ExpenseMileage.IsOperatingExpense())
	assert.False(t, ExpenseGas.IsOperatingExpense())
	assert.False(t, ExpenseFees.IsOperatingExpense())
	assert.False(t, ExpenseShipping.IsOperatingExpense())
}
