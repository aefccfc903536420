package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"robattle/internal/audio"
	"robattle/internal/combat"
	"robattle/internal/config"
	"robattle/internal/logging"
	"robattle/internal/spectate"
	"robattle/internal/tui"
)

func main() {
	var cfgDir, spectateAddr, playerTeam string
	var seed int64
	var tickMs int
	var debug, allAI bool
	flag.StringVar(&cfgDir, "config", "", "config dir (embedded defaults when empty)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed")
	flag.IntVar(&tickMs, "tick", 0, "tick interval in ms (balance.yaml when 0)")
	flag.StringVar(&spectateAddr, "spectate", "", "serve a websocket spectator feed on this address, e.g. :8080")
	flag.StringVar(&playerTeam, "team", "", "player-controlled team id (teams.yaml when empty)")
	flag.BoolVar(&allAI, "ai", false, "let the engine decide for every robot")
	flag.BoolVar(&debug, "debug", false, "write logs to logs/robattle.log")
	flag.Parse()

	if f := setupLogging(debug); f != nil {
		defer f.Close()
	}

	bundle, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if tickMs <= 0 {
		tickMs = bundle.Balance.TickIntervalMs
	}

	sess := combat.NewBattle(bundle, seed, combat.RosterOptions{AllAutomated: allAI, PlayerTeam: playerTeam})
	logging.Info("session created", logging.Fields{"session": sess.ID, "seed": seed, "tick_ms": tickMs})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	renderer := tui.NewRenderer(screen)
	sess.Subscribe(renderer)

	// Non-fatal, the game runs without sound
	sound := audio.NewSoundManager(audio.LoadConfig())
	if err := sound.Initialize(); err != nil {
		logging.Warn("audio disabled", logging.Fields{"error": err.Error()})
	}
	defer sound.Cleanup()
	sess.Subscribe(sound)

	if spectateAddr != "" {
		hub := spectate.NewHub()
		srv := spectate.NewServer(spectateAddr, hub)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		sess.Subscribe(hub)
	}

	run(screen, sess, renderer, time.Duration(tickMs)*time.Millisecond, allAI)
}

// run owns the session: key events and ticks are serialized through one select.
// With auto set, open decisions are answered by the engine on each tick.
func run(screen tcell.Screen, sess *combat.Session, renderer *tui.Renderer, interval time.Duration, auto bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	renderer.Draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := tui.MapKey(ev)
				if a == tui.ActQuit {
					return
				}
				tui.Apply(sess, a)
			case *tcell.EventResize:
				screen.Sync()
			}
			renderer.Draw()

		case <-ticker.C:
			if !auto || !sess.AutoDecide() {
				sess.Tick()
			}
			renderer.Draw()
		}
	}
}
