package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/tatianab/math-battles/internal/analytics"
	"github.com/tatianab/math-battles/internal/config"
	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
	"github.com/tatianab/math-battles/internal/player"
	"github.com/tatianab/math-battles/internal/timer"
)

var (
	playerName = flag.String("player", "oracle", "Player: oracle|gemini")
	accuracy   = flag.Float64("accuracy", 0.8, "Share of correct answers for the oracle player")
	maxTurns   = flag.Int("turns", 200, "Maximum number of turns to play")
	continues  = flag.Int("continues", 1, "Continues to use after a defeat")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	roster := models.DefaultRoster()
	if cfg.RosterPath != "" {
		if roster, err = models.LoadRoster(cfg.RosterPath); err != nil {
			log.Fatalf("Failed to load roster: %v", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var p player.Player
	switch *playerName {
	case "oracle":
		p = player.NewOracle(*accuracy, rand.New(rand.NewSource(seed+1)))
	case "gemini":
		if err := cfg.RequireGemini(); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		g, err := player.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create player: %v", err)
		}
		defer g.Close()
		p = g
	default:
		log.Fatalf("Unknown player %q", *playerName)
	}

	summary := analytics.NewSummary()
	stats := analytics.Tee{analytics.NewLogger(log.New(os.Stderr, "analytics: ", 0)), summary}
	clock := &timer.Manual{}
	eng := engine.NewEngine(engine.Options{
		Roster:    roster,
		Rand:      rand.New(rand.NewSource(seed)),
		Scheduler: clock,
		Analytics: stats,
	})

	fmt.Printf("--- %s: %s player, seed %d ---\n\n", roster.Title, p.Name(), seed)
	if err := eng.Start(ctx); err != nil {
		log.Fatalf("Failed to start battle: %v", err)
	}

	used := 0
	for turn := 1; turn <= *maxTurns; turn++ {
		st := eng.Snapshot()
		if st.State == engine.StateDefeated {
			if used < *continues {
				used++
				fmt.Printf("Defeated! Continuing (%d/%d)\n\n", used, *continues)
				if err := eng.Continue(ctx); err != nil {
					log.Fatalf("Failed to continue: %v", err)
				}
			} else if err := eng.Decline(ctx); err != nil {
				log.Fatalf("Failed to decline: %v", err)
			}
			st = eng.Snapshot()
		}
		if st.State.Terminal() {
			break
		}

		enemy := eng.Roster().Enemy(st.EnemyLevel)
		fmt.Printf("--- Turn %d: level %d vs %s ---\n", turn, st.EnemyLevel, enemy.Name)
		fmt.Printf("Problem (%s): %s\n", st.Problem.Category, st.Problem.Question)

		answer, err := p.Answer(ctx, st, enemy)
		if err != nil {
			log.Printf("Player failed to answer: %v", err)
			stats.Error("player", err.Error())
			if clock.Pending() == 0 {
				log.Fatalf("Turn %d has no running countdown", turn)
			}
			fmt.Printf("No answer, waiting out the %ds timer\n", st.TimeRemaining)
			clock.Advance(st.TimeRemaining)
			printHealth(eng.Snapshot())
			continue
		}

		res := eng.Submit(ctx, answer)
		verdict := "wrong"
		if res.Correct {
			verdict = "correct"
		}
		fmt.Printf("Answer: %s (%s, expected %s)\n", answer, verdict, res.Problem.Answer)
		if res.LevelUp {
			fmt.Println("LEVEL UP!")
		}
		printHealth(eng.Snapshot())
	}

	printSummary(eng.Snapshot(), summary)
}

func printHealth(st engine.BattleState) {
	fmt.Printf("Player %d/%d, Enemy %d/%d, Score %d\n\n",
		st.PlayerHealth, engine.MaxHealth, st.EnemyHealth, engine.MaxHealth, st.Score)
}

func printSummary(st engine.BattleState, s *analytics.Summary) {
	fmt.Println("--- Result ---")
	switch st.State {
	case engine.StateVictory:
		fmt.Println("Game Ended: Player Won!")
	case engine.StateGameOver:
		fmt.Println("Game Ended: Player Lost!")
	default:
		fmt.Printf("Stopped after the turn limit in state %s\n", st.State)
	}
	fmt.Printf("Level %d, score %d, accuracy %.0f%% over %d answers\n",
		st.EnemyLevel, st.Score, s.Accuracy()*100, s.Attempts)

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		n := s.ByCategory[c]
		fmt.Printf("  %-12s %d/%d\n", c, n[0], n[1])
	}
}
