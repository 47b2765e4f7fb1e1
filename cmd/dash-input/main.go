// Command dash-input interprets the dashboard's GPIO buttons and publishes
// navigation and diagnostic events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"

	"github.com/okvist/dash-input/internal/config"
	"github.com/okvist/dash-input/internal/gpio"
	"github.com/okvist/dash-input/internal/input"
	"github.com/okvist/dash-input/internal/mqtt"
	"github.com/okvist/dash-input/internal/obd"
	"github.com/okvist/dash-input/internal/status"
	"github.com/okvist/dash-input/internal/web"
)

const (
	obdQueueSize      = 4
	obdRequestTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "/etc/dash-input.toml", "Path to TOML config file")
	printState := flag.Bool("print-state", false, "Print current pin levels and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := newLogger(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if err := run(cfg, *printState, log); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(os.Stdout),
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func run(cfg config.Config, printState bool, log zerolog.Logger) error {
	reader, err := gpio.NewRealReader(cfg.ActionPin, cfg.ToggleReadPin, cfg.ToggleClearPin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	if printState {
		s, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		mode := input.ResolveMode(input.LevelFromActive(s.ToggleRead), input.LevelFromActive(s.ToggleClear))
		fmt.Printf("action=%s toggle_read=%s toggle_clear=%s mode=%s\n",
			input.LevelFromActive(s.Action), input.LevelFromActive(s.ToggleRead),
			input.LevelFromActive(s.ToggleClear), mode)
		return nil
	}

	publisher, err := mqtt.NewRealPublisher(cfg.Broker, log)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	seed := cfg.SimSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := obd.NewSimulator(seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := obd.NewWorker(sim, obdQueueSize, obdRequestTimeout, log)
	go worker.Run(ctx)

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:         cfg.PollInterval().Milliseconds(),
		DebounceMs:     cfg.DebounceMs,
		DataMs:         cfg.DataMs,
		HeartbeatMs:    cfg.HeartbeatMs,
		Broker:         cfg.Broker,
		HTTPAddr:       cfg.HTTPAddr,
		ActionPin:      cfg.ActionPin,
		ToggleReadPin:  cfg.ToggleReadPin,
		ToggleClearPin: cfg.ToggleClearPin,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Warn().Err(err).Msg("failed to publish startup event")
	} else {
		log.Info().Msg("published startup event")
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker, log)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http status server listening")
	}

	log.Info().
		Dur("poll", cfg.PollInterval()).
		Dur("debounce", cfg.DebounceInterval()).
		Dur("data", cfg.DataInterval()).
		Str("broker", cfg.Broker).
		Msg("started")

	pollTicker := time.NewTicker(cfg.PollInterval())
	defer pollTicker.Stop()
	dataTicker := time.NewTicker(cfg.DataInterval())
	defer dataTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		reader:     reader,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
		enqueue:    worker.Enqueue,
		results:    worker.Results(),
		data:       sim,
		debounce:   cfg.DebounceInterval(),
		heartbeat:  cfg.HeartbeatInterval(),
		log:        log,
	}
	return runLoop(deps, time.Now, pollTicker.C, dataTicker.C, sigCh)
}

// loopDeps bundles everything runLoop needs so tests can swap in fakes.
type loopDeps struct {
	reader     gpio.Reader
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	enqueue    func(obd.Request) bool
	results    <-chan obd.Result
	data       obd.DataSource
	debounce   time.Duration
	heartbeat  time.Duration
	log        zerolog.Logger
}

func runLoop(d loopDeps, now func() time.Time, pollTick, dataTick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	controller := input.NewController(d.debounce, startTime)

	for {
		select {
		case s := <-sig:
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			d.log.Info().Str("signal", signalName).Msg("shutting down")

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if d.tracker != nil {
				if d.mqttStatus != nil {
					d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
				}
				snap := d.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := d.publisher.PublishSystem(event); err != nil {
				d.log.Warn().Err(err).Msg("failed to publish shutdown event")
			} else {
				d.log.Info().Msg("published shutdown event")
			}
			return nil

		case <-pollTick:
			t := now()
			raw, err := d.reader.Read()
			if err != nil {
				d.log.Warn().Err(err).Msg("gpio read error")
				continue
			}

			events := controller.Process(input.Sample{
				Action:      input.LevelFromActive(raw.Action),
				ToggleRead:  input.LevelFromActive(raw.ToggleRead),
				ToggleClear: input.LevelFromActive(raw.ToggleClear),
				Time:        t,
			})

			for _, event := range events {
				if event.WiringFault {
					d.log.Warn().Msg("both toggle inputs driven low, check wiring")
				}
				d.log.Info().
					Str("command", string(event.Command)).
					Str("page", event.Page.String()).
					Str("mode", string(event.Mode)).
					Msg("event")

				if err := d.publisher.PublishEvent(event); err != nil {
					// Don't crash on publish failure
					d.log.Warn().Err(err).Msg("publish error")
				}

				switch event.Command {
				case input.CommandReadCodes:
					d.enqueue(obd.Request{Kind: obd.RequestRead, Issued: t})
				case input.CommandClearCodes:
					d.enqueue(obd.Request{Kind: obd.RequestClear, Issued: t})
				}
			}

			// Check for heartbeat
			if hbData := controller.CheckHeartbeat(t, d.heartbeat); hbData != nil {
				d.log.Info().
					Dur("uptime", hbData.Uptime).
					Int("pages_advanced", hbData.Counts.PagesAdvanced).
					Int("read_requests", hbData.Counts.ReadRequests).
					Int("clear_requests", hbData.Counts.ClearRequests).
					Msg("heartbeat")

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if d.tracker != nil {
					if d.mqttStatus != nil {
						d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						d.tracker.SetNetwork(net)
					}
					updateTracker(d.tracker, controller)
					snap := d.tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					d.log.Warn().Err(err).Msg("heartbeat publish error")
				}
			}

			// Update status tracker for HTTP consumers
			if d.tracker != nil {
				updateTracker(d.tracker, controller)
				if d.mqttStatus != nil {
					d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
				}
			}

		case <-dataTick:
			t := now()
			v := d.data.Snapshot(t)
			if d.tracker != nil {
				d.tracker.SetVehicle(v)
			}
			if err := d.publisher.PublishTelemetry(v, t); err != nil {
				d.log.Warn().Err(err).Msg("telemetry publish error")
			}

		case res := <-d.results:
			if res.Err != nil {
				d.log.Warn().Err(res.Err).Str("kind", string(res.Request.Kind)).Msg("diagnostic request failed")
			} else {
				d.log.Info().Str("kind", string(res.Request.Kind)).Int("codes", len(res.Codes)).Msg("diagnostic request done")
			}
			if d.tracker != nil && res.Err == nil && res.Request.Kind == obd.RequestRead {
				d.tracker.SetLastCodes(res.Codes, res.Completed)
			}
			if err := d.publisher.PublishResult(res); err != nil {
				d.log.Warn().Err(err).Msg("result publish error")
			}
		}
	}
}

func updateTracker(tracker *status.Tracker, controller *input.Controller) {
	advisory := ""
	if controller.CurrentMode() == input.ModeUnknown {
		advisory = input.AdvisoryUnknownToggle
	}
	tracker.Update(controller.CurrentPage(), controller.CurrentMode(), advisory, controller.Counts())
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
