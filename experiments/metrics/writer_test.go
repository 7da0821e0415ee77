package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "matchup")
	require.NoError(t, err)

	t.Run("writes agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Strategy: "greedy", Own: 0.5, Goal: 1.25}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 2, "Should write a header and one row")
		require.Equal(t, []string{"1", "greedy", "0", "0", "0.5", "0", "0", "0", "1.25", "0"}, rows[1], "Should flatten the config")
	})

	t.Run("writes game records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		record := GameRecord{Index: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{
			ID: "abc", StartingPlayer: 1, Winner: 2, Reason: "two triplets", Turns: 40,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second,
		}}
		require.NoError(t, w.WriteGameRecords([]GameRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2, "Should write a header and one row")
		require.Equal(t, "two triplets", rows[1][6], "Should store the reason")
		require.Equal(t, "1s", rows[1][10], "Should store the duration")
	})

	t.Run("writes move records", func(t *testing.T) {
		record := MoveRecord{Game: 1, MoveMetric: MoveMetric{Turn: 3, Player: 1, SearchMetric: SearchMetric{Playouts: 80, BestWins: 12}}}
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, "80", rows[1][7], "Should store the playouts")
		require.Equal(t, "12", rows[1][9], "Should store the best tally")
	})
}
