package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/sangwon514/room-search-map/internal/config"
	"github.com/sangwon514/room-search-map/internal/eventbus"
	"github.com/sangwon514/room-search-map/internal/export"
	"github.com/sangwon514/room-search-map/internal/filterstore"
	"github.com/sangwon514/room-search-map/internal/httpclient"
	"github.com/sangwon514/room-search-map/internal/mapview"
	"github.com/sangwon514/room-search-map/internal/notify"
	"github.com/sangwon514/room-search-map/internal/searchclient"
	"github.com/sangwon514/room-search-map/internal/selection"
	"github.com/sangwon514/room-search-map/internal/ui"
	"github.com/sangwon514/room-search-map/internal/ui/textmap"
)

func main() {
	// Env overrides may live in a local .env file
	_ = godotenv.Load()

	// Set up logging; the terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile("roomsearch.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		defer logFile.Close()
		slog.SetDefault(slog.New(tint.NewHandler(logFile, &tint.Options{NoColor: true})))
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load configuration
	configSvc := config.NewConfigService()
	cfg, err := configSvc.Load()
	if err != nil {
		slog.Error("error loading config", "error", err)
		cfg = config.DefaultConfig()
	}

	// Create event bus
	bus := eventbus.New()

	// Filter state and its change notifier
	store := filterstore.New()
	notifier := notify.NewFilterNotifier(store, bus, cfg.FilterDebounce())
	defer notifier.Close()

	// Shared HTTP client with cookie jar and browser-like headers
	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	header.Set("Accept", "application/json")
	httpClient, err := httpclient.New(header)
	if err != nil {
		fmt.Printf("Error creating HTTP client: %v\n", err)
		os.Exit(1)
	}

	searchSvc := searchclient.New(httpClient, cfg.Endpoints.SearchURL)

	baseURL, err := url.Parse(cfg.Endpoints.DownloadURL)
	if err != nil {
		fmt.Printf("Invalid download URL: %v\n", err)
		os.Exit(1)
	}
	sessions := export.NewCookieSessionStore(httpClient.Jar, baseURL)
	validator := export.NewValidator(httpClient, cfg.Endpoints.ValidateURL, sessions)
	exporter := export.NewExporter(httpClient, cfg.Endpoints.DownloadURL, sessions, export.DirSaver{Dir: cfg.Download.Dir})

	// Map pane and its viewport controller
	provider := textmap.NewProvider()
	controller := mapview.NewController(provider, bus,
		mapview.LatLng{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng}, cfg.Map.InitialLevel)
	controller.Start(ctx)
	defer controller.Teardown()

	// Selection service subscribes to events automatically
	selSvc := selection.NewService(bus)
	defer selSvc.Close()

	// Create UI model
	uiModel := ui.NewModel(ui.Deps{
		Bus:        bus,
		Store:      store,
		Search:     searchSvc,
		Selection:  selSvc,
		Controller: controller,
		Provider:   provider,
		Validator:  validator,
		Exporter:   exporter,
		Sessions:   sessions,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			slog.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventFilterCommitted, forward)
	bus.Subscribe(eventbus.EventViewportChanged, forward)
	bus.Subscribe(eventbus.EventSelectionChanged, forward)
	bus.Subscribe(eventbus.EventSelectionCleared, forward)
	bus.Subscribe(eventbus.EventGeocodeResolved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Export and session lifecycle only needs to reach the log file
	bus.Subscribe(eventbus.EventExportStarted, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ExportStartedEvent)
		slog.Info("export started", "rooms", ev.RoomCount)
	})
	bus.Subscribe(eventbus.EventExportCompleted, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ExportCompletedEvent)
		if ev.Err != nil {
			slog.Error("export failed", "error", ev.Err, "session_reset", ev.SessionReset)
			return
		}
		slog.Info("export completed", "file", ev.Filename)
	})
	bus.Subscribe(eventbus.EventSessionValidated, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SessionValidatedEvent)
		slog.Info("session validated", "valid", ev.Valid)
	})

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}
