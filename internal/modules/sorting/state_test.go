package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState()

	tests := []struct {
		view ViewID
		want Config
	}{
		{ViewPurchases, Config{Key: "date", Direction: Desc}},
		{ViewSales, Config{Key: "date", Direction: Desc}},
		{ViewDividends, Config{Key: "date", Direction: Desc}},
		{ViewHoldings, Config{Key: "total_cost", Direction: Desc}},
		{ViewGlobalHoldings, Config{Key: "total_cost", Direction: Desc}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got, err := s.Config(tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggle_SameKeyFlips(t *testing.T) {
	s := NewState()

	c, err := s.Toggle(ViewSales, "date")
	require.NoError(t, err)
	assert.Equal(t, Config{Key: "date", Direction: Asc}, c)

	c, err = s.Toggle(ViewSales, "date")
	require.NoError(t, err)
	assert.Equal(t, Config{Key: "date", Direction: Desc}, c)
}

func TestToggle_NewKeyStartsDescending(t *testing.T) {
	s := NewState()

	_, err := s.Toggle(ViewSales, "date")
	require.NoError(t, err)

	c, err := s.Toggle(ViewSales, "pnl")
	require.NoError(t, err)
	assert.Equal(t, Config{Key: "pnl", Direction: Desc}, c)
}

func TestToggle_DoubleToggleRestores(t *testing.T) {
	s := NewState()
	before := s.Snapshot()

	_, err := s.Toggle(ViewHoldings, "total_cost")
	require.NoError(t, err)
	_, err = s.Toggle(ViewHoldings, "total_cost")
	require.NoError(t, err)

	assert.Equal(t, before, s.Snapshot())
}

func TestToggle_ViewsAreIndependent(t *testing.T) {
	s := NewState()

	_, err := s.Toggle(ViewHoldings, "name")
	require.NoError(t, err)

	c, err := s.Config(ViewGlobalHoldings)
	require.NoError(t, err)
	assert.Equal(t, "total_cost", c.Key)
}

func TestToggle_UnknownView(t *testing.T) {
	s := NewState()

	_, err := s.Toggle("trades", "date")
	assert.ErrorIs(t, err, ErrUnknownView)

	_, err = s.Config("trades")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestIndicator(t *testing.T) {
	s := NewState()

	assert.Equal(t, Indicator{Active: true, Direction: Desc}, s.Indicator(ViewSales, "date"))
	assert.Equal(t, Indicator{}, s.Indicator(ViewSales, "pnl"))
	assert.Equal(t, Indicator{}, s.Indicator("trades", "date"))

	_, err := s.Toggle(ViewSales, "pnl")
	require.NoError(t, err)
	assert.Equal(t, Indicator{Active: true, Direction: Desc}, s.Indicator(ViewSales, "pnl"))
	assert.False(t, s.Indicator(ViewSales, "date").Active)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewState()
	snap := s.Snapshot()
	snap[ViewSales] = Config{Key: "x", Direction: Asc}

	c, err := s.Config(ViewSales)
	require.NoError(t, err)
	assert.Equal(t, "date", c.Key)
}
