package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}

func TestCharge(t *testing.T) {
	assert.Equal(t, 5.0, Charge(100, 5))
	assert.Equal(t, 1.0, Charge(100, 1))
	assert.Equal(t, 0.6, Charge(29.99, 2))
	assert.Equal(t, 0.0, Charge(100, 0))
}

func TestDrain_RollsExcessForward(t *testing.T) {
	p := Drain(Pools{Savings: 10, DailyIncome: 5, Generation: 3}, 12)
	assert.Equal(t, Pools{Savings: 0, DailyIncome: 0, Generation: 6}, p)
}

func TestDrain_SavingsCoversEverything(t *testing.T) {
	p := Drain(Pools{Savings: 20, DailyIncome: 5, Generation: 3}, 12)
	assert.Equal(t, 0.0, p.Savings)
	assert.Equal(t, 13.0, p.DailyIncome)
	assert.Equal(t, 3.0, p.Generation)
}

func TestDrain_LastBucketKeepsRemainder(t *testing.T) {
	p := Drain(Pools{Savings: 4, DailyIncome: 3, Generation: 10}, 12)
	assert.Equal(t, 0.0, p.Savings)
	assert.Equal(t, 0.0, p.DailyIncome)
	assert.Equal(t, 5.0, p.Generation)
}

func TestDrain_ExactCoverZeroesAll(t *testing.T) {
	p := Drain(Pools{Savings: 10, DailyIncome: 2, Generation: 0}, 12)
	assert.Equal(t, Pools{}, p)
}

func TestDrain_ShortfallZeroesAll(t *testing.T) {
	p := Drain(Pools{Savings: 1, DailyIncome: 1, Generation: 1}, 12)
	assert.Equal(t, Pools{}, p)
}

func TestDrain_NonPositiveAmountIsNoop(t *testing.T) {
	orig := Pools{Savings: 1, DailyIncome: 2, Generation: 3}
	assert.Equal(t, orig, Drain(orig, 0))
	assert.Equal(t, orig, Drain(orig, -5))
}

func TestPoolsTotal(t *testing.T) {
	assert.Equal(t, 18.0, Pools{Savings: 10, DailyIncome: 5, Generation: 3}.Total())
}

func TestRankProgress_Partial(t *testing.T) {
	percent, complete := RankProgress([]int{5, 2, 0}, [3]int{3, 3, 3})
	assert.Equal(t, 55, percent)
	assert.False(t, complete)
}

func TestRankProgress_Complete(t *testing.T) {
	percent, complete := RankProgress([]int{3, 3, 3}, [3]int{3, 3, 3})
	assert.Equal(t, 100, percent)
	assert.True(t, complete)

	percent, complete = RankProgress([]int{30, 10, 7}, [3]int{7, 7, 7})
	assert.Equal(t, 100, percent)
	assert.True(t, complete)
}

func TestRankProgress_Overshoot_CapsPerSlot(t *testing.T) {
	percent, complete := RankProgress([]int{100, 0, 0}, [3]int{3, 3, 3})
	assert.Equal(t, 33, percent)
	assert.False(t, complete)
}

func TestRankProgress_NoReferrals(t *testing.T) {
	percent, complete := RankProgress(nil, [3]int{3, 3, 3})
	assert.Equal(t, 0, percent)
	assert.False(t, complete)
}

func TestGoldGramsFor(t *testing.T) {
	assert.Equal(t, 1.0, GoldGramsFor(250, 250))
	assert.Equal(t, 0.4, GoldGramsFor(100, 250))
	assert.Equal(t, 0.1333, GoldGramsFor(33.33, 250))
	assert.Equal(t, 0.0, GoldGramsFor(100, 0))
}
