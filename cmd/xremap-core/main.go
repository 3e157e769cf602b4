package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/xremap-core/internal/config"
	"github.com/Danondso/xremap-core/internal/evdevsrc"
	"github.com/Danondso/xremap-core/internal/event"
	"github.com/Danondso/xremap-core/internal/handler"
	"github.com/Danondso/xremap-core/internal/keymap"
	"github.com/Danondso/xremap-core/internal/tui"
	"github.com/Danondso/xremap-core/internal/uinputsink"
	"github.com/Danondso/xremap-core/internal/wmclient"
)

func run() error {
	settingsPath := flag.String("config", "", "path to settings.toml (default: "+config.DefaultSettingsPath()+")")
	rulesPath := flag.String("rules", "", "path to the modmap/keymap rule tree (default: "+config.DefaultRulesPath()+")")
	devicePath := flag.String("device", "", "evdev device path (auto-detected when empty)")
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	showTUI := flag.Bool("tui", false, "show the interactive debug status view")
	flag.Parse()

	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	sp := *settingsPath
	if sp == "" {
		sp = config.DefaultSettingsPath()
	}
	settings, err := config.LoadSettings(sp)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	rp := *rulesPath
	if rp == "" {
		rp = config.DefaultRulesPath()
	}
	rules, err := config.LoadRules(rp)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	table, err := keymap.Build(rules)
	if err != nil {
		return fmt.Errorf("build keymap: %w", err)
	}
	dbg.Printf("loaded %d modmap entries, %d keymap entries", len(table.Modmap), len(table.Entries))

	dev := *devicePath
	if dev == "" {
		dev = settings.Device
	}
	src, err := evdevsrc.Open(dev)
	if err != nil {
		return fmt.Errorf("open input device: %w", err)
	}
	defer src.Close()
	dbg.Printf("reading from %s", src.Device().Path)

	sink, err := uinputsink.Open("xremap-core")
	if err != nil {
		return fmt.Errorf("open uinput sink: %w", err)
	}
	defer sink.Close()

	wm := wmclient.NewKDEClient(dbg)
	defer wm.Close()
	if !wm.Supported() {
		dbg.Printf("window-manager client unavailable: application/window predicates will not match")
	}

	h := handler.New(table, wm, src.Device().Path)

	var program *tea.Program
	if *showTUI {
		model := tui.NewModel(src.Device().Path, len(table.Modmap), len(table.Entries), dbg, *debug)
		program = tea.NewProgram(model, tea.WithAltScreen())
		if *debug {
			dbg.SetOutput(tui.NewLogWriter(program))
		}
		h.OnMatch = func(code uint16, suppressed, installsSubmap bool) {
			program.Send(tui.TriggerMatchedMsg{
				Trigger:    fmt.Sprintf("code %d", code),
				Suppressed: suppressed,
				Submap:     installsSubmap,
			})
		}
		h.OnSubmapCleared = func() {
			program.Send(tui.SubmapClearedMsg{})
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- src.Run(ctx, func(ev event.Event) {
			for _, a := range h.HandleEvent(ev) {
				if err := sink.Write(a); err != nil {
					dbg.Printf("write action: %v", err)
					if program != nil {
						program.Send(tui.ErrorMsg{Err: err})
					}
				}
			}
		})
	}()

	if program != nil {
		if _, err := program.Run(); err != nil {
			cancel()
			return fmt.Errorf("tui: %w", err)
		}
		cancel()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("input source: %w", err)
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
