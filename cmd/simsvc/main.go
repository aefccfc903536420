package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"robattle/internal/combat"
	"robattle/internal/config"
	"robattle/internal/logging"
)

func main() {
	var cfgDir, out string
	var seed int64
	var n, maxTicks, workers int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "", "config dir (embedded defaults when empty)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&maxTicks, "max-ticks", 100000, "stop a battle after this many ticks")
	flag.IntVar(&workers, "workers", 8, "parallel simulations in batch mode")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()

	bundle, err := config.LoadAll(cfgDir)
	if err != nil {
		logging.Fatal("load config", err, logging.Fields{"dir": cfgDir})
	}
	opts := combat.RosterOptions{AllAutomated: true}

	if n <= 1 {
		sess := combat.NewBattle(bundle, seed, opts)
		res := combat.RunHeadless(sess, maxTicks, saveLog)
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			logging.Fatal("write result", err, logging.Fields{"out": out})
		}
		fmt.Printf("Single simsvc finished. Winner=%s, ticks=%d, actions=%d -> %s\n", res.Winner, res.Ticks, res.Actions, out)
		return
	}

	st := runBatch(bundle, opts, seed, n, maxTicks, workers)
	if err := os.WriteFile(out, combat.MarshalPretty(st.summary()), 0644); err != nil {
		logging.Fatal("write summary", err, logging.Fields{"out": out})
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}

type stat struct {
	Runs     int
	Wins     map[combat.TeamID]int
	Timeouts int
	SumTicks int
	SumActs  int
	SumMiss  int
	SumCrit  int
	ByRobot  map[string]float64
	ByPart   map[string]float64
}

func runBatch(bundle *config.Bundle, opts combat.RosterOptions, seed int64, n, maxTicks, workers int) *stat {
	st := &stat{
		Runs:    n,
		Wins:    map[combat.TeamID]int{},
		ByRobot: map[string]float64{},
		ByPart:  map[string]float64{},
	}
	if workers < 1 {
		workers = 1
	}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				sess := combat.NewBattle(bundle, seed+int64(workerID)*7919+int64(i), opts)
				res := combat.RunHeadless(sess, maxTicks, false)

				mu.Lock()
				if res.Finished {
					st.Wins[res.Winner]++
				} else {
					st.Timeouts++
				}
				st.SumTicks += res.Ticks
				st.SumActs += res.Actions
				st.SumMiss += res.Misses
				st.SumCrit += res.Criticals
				for k, v := range res.DamageByRobot {
					st.ByRobot[k] += v
				}
				for k, v := range res.DamageByPart {
					st.ByPart[k] += v
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return st
}

func (st *stat) summary() map[string]any {
	totalDmg := 0.0
	for _, v := range st.ByRobot {
		totalDmg += v
	}

	percent := func(m map[string]float64) map[string]any {
		out := map[string]any{}
		for k, v := range m {
			share := 0.0
			if totalDmg > 0 {
				share = v / totalDmg
			}
			out[k] = map[string]any{"total": v, "ratio": share}
		}
		return out
	}

	teams := make([]string, 0, len(st.Wins))
	for t := range st.Wins {
		teams = append(teams, string(t))
	}
	sort.Strings(teams)
	winRate := map[string]float64{}
	for _, t := range teams {
		winRate[t] = float64(st.Wins[combat.TeamID(t)]) / float64(st.Runs)
	}

	hitRate := 0.0
	if st.SumActs > 0 {
		hitRate = float64(st.SumActs-st.SumMiss) / float64(st.SumActs)
	}

	return map[string]any{
		"runs":         st.Runs,
		"win_rate":     winRate,
		"timeouts":     st.Timeouts,
		"avg_ticks":    float64(st.SumTicks) / float64(st.Runs),
		"avg_actions":  float64(st.SumActs) / float64(st.Runs),
		"hit_rate":     hitRate,
		"criticals":    st.SumCrit,
		"total_damage": totalDmg,
		"by_robot":     percent(st.ByRobot),
		"by_part":      percent(st.ByPart),
	}
}
