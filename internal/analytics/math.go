package analytics

// safePercent returns part/whole as a percentage, guarding the zero
// denominator with an explicit 0 instead of NaN or Inf.
func safePercent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}

	return part / whole * 100
}

// roiPercent applies the return-on-investment rule used across every view:
// with no cost basis, a positive profit reads as 100% and anything else as 0.
func roiPercent(profit, cost float64) float64 {
	if cost > 0 {
		return profit / cost * 100
	}
	if profit > 0 {
		return 100
	}

	return 0
}

// deref treats a missing money field as zero.
func deref(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

// firstNonNil walks a fallback chain of optional money fields and returns the
// first value present, or zero when the whole chain is empty.
func firstNonNil(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}

	return 0
}
