package experiments

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"riskbattle/config"
	"riskbattle/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func testExperiment(games, goroutines int) Experiment {
	cfg := config.Default()
	cfg.Seed = 100
	return Experiment{Name: "test", Config: cfg, Games: games, Goroutines: goroutines}
}

func TestRun(t *testing.T) {
	t.Run("one record per battle", func(t *testing.T) {
		summary, records, err := Run(testExperiment(40, 4))

		require.NoError(t, err)
		require.Len(t, records, 40)
		require.Equal(t, 40, summary.Games)
		require.Equal(t, 40, summary.InitiatorWins+summary.ResponderWins+summary.Unfinished)
		require.Zero(t, summary.Unfinished)
		require.Greater(t, summary.MeanRounds, 0.0)

		for i, record := range records {
			require.Equal(t, i+1, record.ID)
			require.Equal(t, uint64(100+i), record.Seed, "Battles should get consecutive seeds")
			require.NotEmpty(t, record.Winner)
			require.Greater(t, record.Attacks, 0)
			require.LessOrEqual(t, record.Hits, record.Rolls)
			require.Equal(t, record.Damage, record.Hits, "Every hit is resolved as damage")
			require.True(t, record.InitiatorSurvivors == 0 || record.ResponderSurvivors == 0)
		}
	})

	t.Run("parallelism does not change results", func(t *testing.T) {
		_, sequential, err := Run(testExperiment(20, 1))
		require.NoError(t, err)
		_, parallel, err := Run(testExperiment(20, 8))
		require.NoError(t, err)

		for i := range sequential {
			require.Equal(t, sequential[i].Winner, parallel[i].Winner)
			require.Equal(t, sequential[i].Rounds, parallel[i].Rounds)
			require.Equal(t, sequential[i].Counts, parallel[i].Counts)
		}
	})

	t.Run("skipping combat counts", func(t *testing.T) {
		exp := testExperiment(5, 2)
		exp.NoCounts = true
		_, records, err := Run(exp)

		require.NoError(t, err)
		for _, record := range records {
			require.Equal(t, metrics.Counts{}, record.Counts)
			require.NotEmpty(t, record.Winner)
		}
	})

	t.Run("seeds near the top of the range stay replayable", func(t *testing.T) {
		exp := testExperiment(3, 1)
		exp.Config.Seed = math.MaxUint64 - 1
		_, records, err := Run(exp)

		require.NoError(t, err)
		require.Equal(t, uint64(math.MaxUint64-1), records[0].Seed)
		require.Equal(t, uint64(math.MaxUint64), records[1].Seed)
		require.Equal(t, uint64(1), records[2].Seed, "Wrapping should skip the clock seed")
	})

	t.Run("rejecting empty experiments", func(t *testing.T) {
		_, _, err := Run(testExperiment(0, 4))
		require.ErrorIs(t, err, ErrNoGames)
	})

	t.Run("rejecting an invalid config", func(t *testing.T) {
		exp := testExperiment(2, 1)
		exp.Config.MaxRounds = 0
		_, _, err := Run(exp)
		require.ErrorIs(t, err, config.ErrInvalidMaxRounds)
	})
}

func TestRunAndStore(t *testing.T) {
	dir := t.TempDir()

	summary, out, err := RunAndStore(testExperiment(5, 2), dir)

	require.NoError(t, err)
	require.Equal(t, 5, summary.Games)
	require.Equal(t, filepath.Join(dir, "test"), filepath.Dir(out))

	f, err := os.Open(filepath.Join(out, "battles.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6, "Header plus one row per battle")
	require.Equal(t, "id", rows[0][0])
	require.Equal(t, "100", rows[1][1])

	cfgFile, err := os.Open(filepath.Join(out, "config.csv"))
	require.NoError(t, err)
	defer cfgFile.Close()
	cfgRows, err := csv.NewReader(cfgFile).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"30", "2", "10000", "100", "Player", "Computer", "5", "2"}, cfgRows[1])
}

func TestBattleSeed(t *testing.T) {
	require.Equal(t, uint64(105), battleSeed(100, 5))
	require.Equal(t, uint64(math.MaxUint64), battleSeed(math.MaxUint64, 0))
	require.Equal(t, uint64(1), battleSeed(math.MaxUint64, 1))
	require.Equal(t, uint64(2), battleSeed(math.MaxUint64-1, 3))
}
