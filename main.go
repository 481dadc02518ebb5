package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"DotWorld/internal/config"
	dwnet "DotWorld/internal/net"
	"DotWorld/internal/state"
	"DotWorld/internal/ui"

	"fyne.io/fyne/v2"
)

const (
	CustomURLScheme = "dotworld://"
	discoverTimeout = 3 * time.Second
)

func main() {
	configPath := flag.String("config", "", "config file (default: user config dir)/dotworld/config.toml")
	watch := flag.Bool("watch", false, "spectate the first host found on the local network")
	flag.Parse()

	cfg := loadConfig(*configPath)

	link := flag.Arg(0)
	switch {
	case strings.HasPrefix(link, CustomURLScheme):
		address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
		runSpectator(cfg, address)
	case *watch:
		ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
		address, err := dwnet.Discover(ctx, discoverTimeout)
		cancel()
		if err != nil {
			log.Fatalf("Finding a host: %v", err)
		}
		runSpectator(cfg, address)
	default:
		runHost(cfg)
	}
}

func loadConfig(path string) config.Config {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Printf("Using default config: %v", err)
			return config.Default()
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	return cfg
}

func windowOptions(cfg config.Config, suffix string) ui.WindowOptions {
	return ui.WindowOptions{
		Title:  cfg.Window.Title + suffix,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	ctrl := state.NewController(state.NewStore(), state.Options{Radius: cfg.Dots.Radius})
	board := ui.NewDotCanvas(ctrl)

	if cfg.Mirror.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		startMirror(ctx, cfg.Mirror, board)
	}

	ui.RunApp(windowOptions(cfg, ""), board)
}

// startMirror serves the board's frames to spectators and, if configured,
// advertises the feed over mDNS until ctx is done.
func startMirror(ctx context.Context, mc config.Mirror, board *ui.DotCanvas) {
	ln, err := dwnet.Listen(fmt.Sprintf(":%d", mc.Port))
	if err != nil {
		log.Printf("Mirror disabled: %v", err)
		return
	}

	mirror := dwnet.NewMirror()
	board.OnFrame = mirror.Publish
	mirror.Publish(board.Frame())

	go func() {
		if err := mirror.Serve(ctx, ln); err != nil {
			log.Printf("Mirror stopped: %v", err)
		}
	}()

	if mc.Advertise {
		server, err := dwnet.Advertise(mc.Port, mirror.Session)
		if err != nil {
			log.Printf("Not advertising mirror: %v", err)
		} else {
			context.AfterFunc(ctx, func() { server.Shutdown() })
		}
	}

	board.SetShareLink(fmt.Sprintf("%s%s:%d", CustomURLScheme, dwnet.GetOutgoingIP(), mc.Port))
}

func runSpectator(cfg config.Config, address string) {
	log.Println("Starting as SPECTATOR of", address)
	board := ui.NewSpectatorCanvas()

	go func() {
		time.Sleep(500 * time.Millisecond) // Give UI time to launch
		err := dwnet.Watch(context.Background(), address, func(env dwnet.Envelope) {
			fyne.Do(func() { board.ShowFrame(env.Frame) })
		})
		if err != nil {
			log.Printf("Spectating %s: %v", address, err)
		}
		fyne.Do(func() { board.SetStatus(fmt.Sprintf("Disconnected from %s", address)) })
	}()

	ui.RunApp(windowOptions(cfg, " (spectating)"), board)
}
