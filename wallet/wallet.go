package wallet

import "math"

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Charge computes a percentage fee on amount, rounded to 2 decimals.
func Charge(amount, percent float64) float64 {
	return Round2(amount * percent / 100)
}

// Pools are the legacy sub-account buckets drained by a withdraw, in their
// fixed order: savings, then daily income, then generation bonus.
type Pools struct {
	Savings     float64
	DailyIncome float64
	Generation  float64
}

// Total is the combined value of all three buckets.
func (p Pools) Total() float64 {
	return p.Savings + p.DailyIncome + p.Generation
}

// Drain consumes amount from the pools in order. A bucket that covers the
// remainder is still zeroed and its excess rolls forward into the next bucket;
// the last bucket keeps its remainder. When the combined pools cannot cover
// the amount, all three are zeroed regardless — a quirk of the original
// settlement logic that callers rely on.
func Drain(p Pools, amount float64) Pools {
	if amount <= 0 {
		return p
	}
	if p.Total() < amount {
		return Pools{}
	}

	remaining := amount

	// savings
	if p.Savings >= remaining {
		excess := p.Savings - remaining
		p.Savings = 0
		p.DailyIncome += excess
		remaining = 0
	} else {
		remaining -= p.Savings
		p.Savings = 0
	}

	// daily income
	if remaining > 0 {
		if p.DailyIncome >= remaining {
			excess := p.DailyIncome - remaining
			p.DailyIncome = 0
			p.Generation += excess
			remaining = 0
		} else {
			remaining -= p.DailyIncome
			p.DailyIncome = 0
		}
	}

	// generation bonus keeps its remainder, there is no next bucket
	if remaining > 0 {
		p.Generation = Round2(p.Generation - remaining)
	}

	p.Savings = Round2(p.Savings)
	p.DailyIncome = Round2(p.DailyIncome)
	p.Generation = Round2(p.Generation)
	return p
}

// RankProgress scores a rank tier requirement against the top three gen1
// subtree sizes. Percent is floor(average(min(actual/required, 1)) * 100);
// completion requires every slot to meet its requirement.
func RankProgress(actual []int, required [3]int) (percent int, complete bool) {
	var sum float64
	complete = true
	for i := 0; i < 3; i++ {
		var have int
		if i < len(actual) {
			have = actual[i]
		}
		if required[i] <= 0 {
			sum += 1
			continue
		}
		ratio := float64(have) / float64(required[i])
		if ratio >= 1 {
			sum += 1
		} else {
			sum += ratio
			complete = false
		}
	}
	percent = int(math.Floor(sum / 3 * 100))
	return percent, complete
}

// GoldGramsFor converts a cash amount into the grams of gold it is worth at
// the given price per gram, rounded to 4 decimals.
func GoldGramsFor(amount, pricePerGram float64) float64 {
	if pricePerGram <= 0 {
		return 0
	}
	return math.Round(amount/pricePerGram*10000) / 10000
}
