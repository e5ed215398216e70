package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one NPC configuration in an experiment. Style and
// Difficulty are the npc package's string forms, kept as plain strings here
// so results files are self-describing.
type AgentConfig struct {
	ID         int
	Style      string
	Difficulty string
	Randomness float64 // effective randomness probability
}

// GameRecord is the result of a single game.
type GameRecord struct {
	ID        int
	Matchup   int
	Agent1    int // AgentConfig.ID
	Agent2    int // AgentConfig.ID
	Winner    string
	Reason    string
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// MoveRecord is one decision within a game.
type MoveRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player string
	DecisionMetric
}

// MatchupRecord aggregates the games of one pairing.
type MatchupRecord struct {
	ID         int
	Agent1     int
	Agent2     int
	Games      int
	Agent1Wins int
	Agent2Wins int
	Draws      int
	AvgMoves   float64
	MinMoves   int
	MaxMoves   int
}

type Writer struct {
	baseDir string
}

// NewWriter creates a results directory named by the experiment and the
// current timestamp.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("results", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) writeCSV(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", filename, err)
		}
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "style", "difficulty", "randomness"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Style,
			config.Difficulty,
			strconv.FormatFloat(config.Randomness, 'f', -1, 64),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "agent1", "agent2", "winner", "reason", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner,
			record.Reason,
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "candidates", "scored", "random_pick", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Scored),
			strconv.FormatBool(record.RandomPick),
			record.Duration.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteMatchupRecords(records []MatchupRecord) error {
	header := []string{"id", "agent1", "agent2", "games", "agent1_wins", "agent2_wins", "draws", "avg_moves", "min_moves", "max_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Agent1Wins),
			strconv.Itoa(record.Agent2Wins),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.AvgMoves, 'f', 1, 64),
			strconv.Itoa(record.MinMoves),
			strconv.Itoa(record.MaxMoves),
		})
	}
	return w.writeCSV("matchup_records.csv", header, rows)
}
