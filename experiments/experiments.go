package experiments

import (
	"fmt"
	"sync"
	"time"

	"dablo/engine"
	"dablo/experiments/metrics"
	"dablo/game"
	"dablo/npc"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultGames       = 50 // Per matchup
	DefaultParallelism = 8  // Concurrent games per matchup
	MatchMoveLimit     = 150
)

type matchup struct {
	style1 npc.Style
	style2 npc.Style
	diff1  npc.Difficulty
	diff2  npc.Difficulty
}

// standardMatchups covers cross-style, difficulty-variation, and mirror
// pairings.
var standardMatchups = []matchup{
	{npc.Smart, npc.Random, npc.Hard, npc.Medium},
	{npc.Aggressive, npc.Defensive, npc.Hard, npc.Medium},
	{npc.Smart, npc.Aggressive, npc.Hard, npc.Hard},
	{npc.Smart, npc.Defensive, npc.Hard, npc.Medium},
	{npc.Aggressive, npc.Random, npc.Hard, npc.Medium},
	{npc.Defensive, npc.Random, npc.Medium, npc.Medium},
	{npc.Aggressive, npc.Smart, npc.Hard, npc.Hard},
	{npc.Defensive, npc.Smart, npc.Medium, npc.Hard},
	{npc.Smart, npc.Smart, npc.Easy, npc.Hard},
	{npc.Aggressive, npc.Aggressive, npc.Medium, npc.Hard},
	{npc.Defensive, npc.Defensive, npc.Easy, npc.Medium},
	{npc.Random, npc.Random, npc.Medium, npc.Medium},
	{npc.Smart, npc.Smart, npc.Hard, npc.Hard},
	{npc.Aggressive, npc.Aggressive, npc.Medium, npc.Medium},
	{npc.Defensive, npc.Defensive, npc.Easy, npc.Easy},
}

type agentSpec struct {
	config  metrics.AgentConfig
	profile npc.Profile
}

type gameResult struct {
	game    metrics.GameRecord
	moves   []metrics.MoveRecord
	winner  game.Player // 0 on draw
	commits int
	err     error
}

// RunMatchupExperiment plays every standard matchup for the given number of
// games and writes agent, game, move, and matchup records as CSV. Games
// within a matchup run concurrently; each owns its state, and the board
// graph is shared read-only.
func RunMatchupExperiment(games, parallelism int) error {
	if games <= 0 {
		games = DefaultGames
	}
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	specs, pairs := buildAgentSpecs()
	baseSeed := uint64(time.Now().UnixNano())

	log.Info().Msgf("starting matchup experiment: %d matchups, %d games each...", len(standardMatchups), games)

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	var matchupRecords []metrics.MatchupRecord
	count := 0

	for mi, pair := range pairs {
		spec1, spec2 := pair[0], pair[1]
		log.Info().Msgf("starting matchup %d of %d: %s/%s vs %s/%s...",
			mi+1, len(pairs), spec1.config.Style, spec1.config.Difficulty, spec2.config.Style, spec2.config.Difficulty)

		results := runMatchup(mi+1, spec1, spec2, games, parallelism, count, baseSeed+uint64(mi)*1e6)

		record := metrics.MatchupRecord{
			ID:       mi + 1,
			Agent1:   spec1.config.ID,
			Agent2:   spec2.config.ID,
			Games:    len(results),
			MinMoves: -1,
		}
		totalMoves := 0
		for _, r := range results {
			if r.err != nil {
				return fmt.Errorf("matchup %d: %w", mi+1, r.err)
			}
			count++
			gameRecords = append(gameRecords, r.game)
			moveRecords = append(moveRecords, r.moves...)

			switch r.winner {
			case game.Player1:
				record.Agent1Wins++
			case game.Player2:
				record.Agent2Wins++
			default:
				record.Draws++
			}
			totalMoves += r.commits
			if record.MinMoves < 0 || r.commits < record.MinMoves {
				record.MinMoves = r.commits
			}
			if r.commits > record.MaxMoves {
				record.MaxMoves = r.commits
			}
		}
		if record.Games > 0 {
			record.AvgMoves = float64(totalMoves) / float64(record.Games)
		}
		matchupRecords = append(matchupRecords, record)

		log.Info().Msgf("completed matchup %d of %d: %d/%d/%d (wins/losses/draws), avg %.1f moves",
			mi+1, len(pairs), record.Agent1Wins, record.Agent2Wins, record.Draws, record.AvgMoves)
	}

	log.Info().Msgf("completed matchup experiment: %d games", count)

	writer, err := metrics.NewWriter("matchups")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	configs := make([]metrics.AgentConfig, 0, len(specs))
	for _, spec := range specs {
		configs = append(configs, spec.config)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	if err := writer.WriteMatchupRecords(matchupRecords); err != nil {
		return fmt.Errorf("failed to store matchup records: %w", err)
	}
	log.Info().Msg("stored experiment records")

	return nil
}

// buildAgentSpecs deduplicates the matchup table into one AgentConfig per
// distinct style/difficulty pair, and resolves each matchup to its specs.
func buildAgentSpecs() ([]agentSpec, [][2]agentSpec) {
	specByKey := map[string]agentSpec{}
	var specs []agentSpec
	var pairs [][2]agentSpec

	intern := func(style npc.Style, diff npc.Difficulty) agentSpec {
		key := style.String() + "/" + diff.String()
		if spec, ok := specByKey[key]; ok {
			return spec
		}
		profile := npc.Profile{Style: style, Difficulty: diff}
		spec := agentSpec{
			config: metrics.AgentConfig{
				ID:         len(specs) + 1,
				Style:      style.String(),
				Difficulty: diff.String(),
				Randomness: profile.EffectiveRandomness(),
			},
			profile: profile,
		}
		specByKey[key] = spec
		specs = append(specs, spec)
		return spec
	}

	for _, mu := range standardMatchups {
		pairs = append(pairs, [2]agentSpec{
			intern(mu.style1, mu.diff1),
			intern(mu.style2, mu.diff2),
		})
	}
	return specs, pairs
}

// runMatchup plays the games of one pairing on a bounded worker pool.
func runMatchup(matchupID int, spec1, spec2 agentSpec, games, parallelism, idOffset int, seed uint64) []gameResult {
	task := make(chan int, games)
	for i := 0; i < games; i++ {
		task <- i
	}
	close(task)

	results := make([]gameResult, games)
	var wg sync.WaitGroup
	for g := 0; g < parallelism; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				results[i] = runGame(idOffset+i+1, matchupID, spec1, spec2, seed+uint64(i)*2)
			}
		}()
	}
	wg.Wait()

	return results
}

// runGame executes a single game between two NPCs and returns its records.
func runGame(id, matchupID int, spec1, spec2 agentSpec, seed uint64) gameResult {
	state, err := game.NewGame(game.Config{MoveLimit: MatchMoveLimit})
	if err != nil {
		return gameResult{err: fmt.Errorf("game %d: %w", id, err)}
	}

	agent1 := npc.New(spec1.profile, npc.WithRand(rand.New(rand.NewSource(seed))), npc.WithMetrics())
	agent2 := npc.New(spec2.profile, npc.WithRand(rand.New(rand.NewSource(seed+1))), npc.WithMetrics())
	e := engine.NewLocal(state, agent1, agent2)

	start := time.Now()
	outcome, records, err := e.Run()
	end := time.Now()
	if err != nil {
		return gameResult{err: fmt.Errorf("game %d: %w", id, err)}
	}

	winner := ""
	var winnerPlayer game.Player
	if outcome.Status == game.Won {
		winner = outcome.Winner.String()
		winnerPlayer = outcome.Winner
	}

	result := gameResult{
		game: metrics.GameRecord{
			ID:        id,
			Matchup:   matchupID,
			Agent1:    spec1.config.ID,
			Agent2:    spec2.config.ID,
			Winner:    winner,
			Reason:    outcome.Reason.String(),
			Moves:     e.State.MoveCount,
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
		},
		winner:  winnerPlayer,
		commits: e.State.MoveCount,
	}

	// Pair each engine record with the deciding agent's metric, in order.
	histories := map[game.Player][]metrics.DecisionMetric{
		game.Player1: agent1.History(),
		game.Player2: agent2.History(),
	}
	used := map[game.Player]int{}
	for _, record := range records {
		history := histories[record.Player]
		k := used[record.Player]
		if k >= len(history) {
			break
		}
		used[record.Player]++
		result.moves = append(result.moves, metrics.MoveRecord{
			Game:           id,
			Step:           record.Step,
			Player:         record.Player.String(),
			DecisionMetric: history[k],
		})
	}

	return result
}
