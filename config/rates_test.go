package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateTable_UnknownLabelIsZero(t *testing.T) {
	table := RateTable{"gen1": 30}
	assert.Equal(t, 30.0, table.Rate("gen1"))
	assert.Equal(t, 0.0, table.Rate("gen99"))
	assert.Equal(t, 0.0, RateTable(nil).Rate("gen1"))
}

func TestDefault_CanonicalTables(t *testing.T) {
	r := Default()

	assert.Equal(t, 30.0, r.Daily.Rate("gen1"))
	assert.Equal(t, 0.0, r.Daily.Rate("gen10"))
	assert.Equal(t, 20.0, r.Generation.Rate("gen1"))
	assert.Equal(t, 20.0, r.Savings.Rate("gen1"))
	assert.Equal(t, 0.10, r.InstantGold.Rate("gen1"))
	assert.Equal(t, 20.0, r.View.Rate("g1"))
	assert.Equal(t, 30.0, r.DailyIncomeDist.Rate("own"))
	assert.Equal(t, 15.0, r.DailyIncomeDist.Rate("sponsor"))
	assert.Equal(t, 20.0, r.SavingsDist.Rate("own"))

	require.Len(t, r.RankTiers, 4)
	assert.Equal(t, "Bronze", r.RankTiers[0].Name)
	assert.Equal(t, [3]int{3, 3, 3}, r.RankTiers[0].Required)
	assert.Equal(t, 599.0, r.ActivationFee)
	assert.Equal(t, 5.0, r.WithdrawFeePercent)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("RATES_FILE", "")
	r, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), r)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activationFee": 100, "daily": {"gen1": 99}}`), 0o600))
	t.Setenv("RATES_FILE", path)

	r, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.ActivationFee)
	assert.Equal(t, 99.0, r.Daily.Rate("gen1"))
	// untouched sections keep their defaults
	assert.Equal(t, 5.0, r.WithdrawFeePercent)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Setenv("RATES_FILE", "/nonexistent/rates.json")
	_, err := Load()
	assert.Error(t, err)
}

func TestActiveSwap(t *testing.T) {
	orig := Active()
	defer SetActive(orig)

	custom := Default()
	custom.ActivationFee = 42
	SetActive(custom)
	assert.Equal(t, 42.0, Active().ActivationFee)
}
