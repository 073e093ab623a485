package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_LatestEmpty(t *testing.T) {
	repo := newSnapshotRepo(t)

	_, err := repo.Latest(context.Background())

	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotRepository_SaveAndLatestRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSnapshotRepo(t)
	l := loadFixture(t)

	saved, err := repo.Save(ctx, "file:ledger.json", l)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, saved.Checksum, 64)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, latest.ID)
	assert.Equal(t, "file:ledger.json", latest.Source)
	assert.Equal(t, l.Global, latest.Ledger.Global)
	assert.Equal(t, l.YearLabels(), latest.Ledger.YearLabels())
	assert.Equal(t, l.Years["2023"].Sales, latest.Ledger.Years["2023"].Sales)
	assert.Equal(t, l.Years["2023"].Fees, latest.Ledger.Years["2023"].Fees)
	assert.Equal(t, l.Years["2024"].Dividends, latest.Ledger.Years["2024"].Dividends)
}

func TestSnapshotRepository_SaveUnchangedReusesRow(t *testing.T) {
	ctx := context.Background()
	repo := newSnapshotRepo(t)

	first, err := repo.Save(ctx, "a", loadFixture(t))
	require.NoError(t, err)
	second, err := repo.Save(ctx, "b", loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.Source)
}

func TestSnapshotRepository_Prune(t *testing.T) {
	ctx := context.Background()
	repo := newSnapshotRepo(t)

	var last *Snapshot
	for i := 0; i < 4; i++ {
		l := loadFixture(t)
		l.Global.TotalPnL = float64(i)
		snap, err := repo.Save(ctx, "src", l)
		require.NoError(t, err)
		last = snap
	}

	deleted, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.ID, latest.ID)
	assert.Equal(t, 3.0, latest.Ledger.Global.TotalPnL)

	deleted, err = repo.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
