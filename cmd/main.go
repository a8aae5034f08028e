// RemotePad - phone-as-touchpad server
// Serves a touch surface to a phone browser and turns the gestures into
// pointer, scroll and keyboard input on this machine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kataras/golog"

	"remotepad/internal/api"
	"remotepad/internal/config"
	"remotepad/internal/gesture"
	"remotepad/internal/input"
	"remotepad/internal/network"
	"remotepad/internal/osutils"
	"remotepad/internal/protocol"
	"remotepad/internal/queue"
	"remotepad/internal/tray"
)

var (
	version   = "0.3.0"
	showVer   = flag.Bool("version", false, "Show version")
	port      = flag.Int("port", 0, "Override the configured listen port")
	staticDir = flag.String("static", "", "Serve the touchpad UI from this directory instead of the embedded copy")
	dryRun    = flag.Bool("dry-run", false, "Log actuations instead of injecting input")
	withTray  = flag.Bool("tray", false, "Show a system tray icon")
	probeAddr = flag.String("probe", "", "Connect to a running server at host:port and replay a test gesture burst")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("remotepad version %s\n", version)
		return
	}

	if *probeAddr != "" {
		runProbe(*probeAddr)
		return
	}

	cfgMgr, err := config.NewManager()
	if err != nil {
		golog.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		golog.Warnf("Failed to load config: %v", err)
	}

	// Flag overrides on top of the file.
	cfg := cfgMgr.Get()
	if *port != 0 {
		cfg.General.ListenPort = *port
	}
	if *staticDir != "" {
		cfg.General.StaticDir = *staticDir
	}
	if *dryRun {
		cfg.General.DryRun = true
	}
	if *withTray {
		cfg.General.TrayEnabled = true
	}
	cfgMgr.Set(cfg)

	golog.SetLevel(cfg.General.LogLevel)

	runService(cfgMgr)
}

func runService(cfgMgr *config.Manager) {
	golog.Infof("RemotePad %s starting", version)
	cfg := cfgMgr.Get()

	if runtime.GOOS == "windows" {
		go func() {
			if err := osutils.EnsureFirewallRule(cfg.General.ListenPort); err != nil {
				golog.Warnf("Firewall warning: %v", err)
			}
		}()
	}

	clock := gesture.NewSystemClock()
	shared := &gesture.SharedClock{}
	events := queue.NewUnbounded[protocol.ClientEvent]()

	actuator := pickActuator(cfg)

	interp := gesture.NewInterpreter(actuator, clock, shared, func() gesture.Tuning {
		return cfgMgr.Get().Tuning
	})

	interpDone := make(chan struct{})
	go func() {
		interp.Run(events.Out())
		close(interpDone)
	}()

	if stop, err := cfgMgr.Watch(); err != nil {
		golog.Warnf("Config hot reload unavailable: %v", err)
	} else {
		defer stop()
	}

	server := api.NewServer(cfgMgr, events, clock, shared)
	go func() {
		if err := server.Start(); err != nil {
			golog.Errorf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.General.TrayEnabled {
		t := tray.New("RemotePad", "RemotePad - phone touchpad")
		if ips, err := network.LocalIPs(); err == nil && len(ips) > 0 {
			t.AddMenuItem(fmt.Sprintf("http://%s:%d/", ips[0], cfg.General.ListenPort), nil)
			t.AddSeparator()
		}
		t.AddMenuItem("Quit", func() { t.Stop() })

		go func() {
			<-sigCh
			t.Stop()
		}()

		t.Run() // blocks until Quit or signal
	} else {
		<-sigCh
	}

	golog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		golog.Warnf("Server shutdown: %v", err)
	}

	// Close the producer side and let the interpreter drain what is queued.
	events.Close()
	<-interpDone
}

// pickActuator selects native injection when the platform supports it, the
// logging actuator otherwise or in dry-run mode.
func pickActuator(cfg config.Config) input.Actuator {
	if cfg.General.DryRun {
		golog.Info("Dry-run: actuations will be logged, not injected")
		return input.NewLogActuator()
	}
	if !input.Enabled() {
		golog.Warn("Native input injection unavailable on this platform; falling back to logging")
		return input.NewLogActuator()
	}
	return input.NewInjector()
}

func runProbe(addr string) {
	client := network.NewClient(addr)
	if err := client.Connect(); err != nil {
		golog.Fatalf("Probe failed: %v", err)
	}
	defer client.Close()

	if err := client.SendGestureBurst(); err != nil {
		golog.Fatalf("Probe failed: %v", err)
	}
	golog.Info("Probe complete; check the server's cursor and /api/status")
}
