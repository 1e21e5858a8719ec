package main

import (
	"context"
	"embed"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/fileserver"
	aqmmw "github.com/aquamarinepk/aqm/middleware"
	"github.com/aquamarinepk/aqm/template"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marmaraspra/adminboard/internal/admin"
	"github.com/marmaraspra/adminboard/internal/alert"
	"github.com/marmaraspra/adminboard/internal/notify"
)

const (
	appNamespace = "ADMINBOARD"
	appName      = "adminboard"
	appVersion   = "0.1.0"
)

//go:embed assets
var assetsFS embed.FS

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("Cannot setup %s(%s): %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	fileServer := fileserver.New(assetsFS, fileserver.WithLogger(logger))
	tmplMgr := template.NewManager(assetsFS, template.WithLogger(logger))

	backendURL, ok := config.GetString("services.backend.url")
	if !ok || backendURL == "" {
		log.Fatalf("services.backend.url is required")
	}
	backendClient := aqm.NewServiceClient(backendURL)

	orderDA := admin.NewOrderDataAccess(backendClient)
	menuDA := admin.NewMenuDataAccess(backendClient)
	packDA := admin.NewPackDataAccess(backendClient)
	promoDA := admin.NewPromotionDataAccess(backendClient)
	dashDA := admin.NewDashboardDataAccess(backendClient)

	pageSize := 0
	if raw := config.GetStringOrDef("orders.page_size", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	queryState := admin.NewOrderQueryState(orderDA, pageSize, logger)
	mutations := admin.NewMutationTracker(orderDA, queryState, logger)

	broadcaster := notify.NewBroadcaster(logger)
	engine := alert.NewEngine(broadcaster)

	pollInterval := 15 * time.Second
	if raw := config.GetStringOrDef("alert.poll_interval", ""); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			pollInterval = time.Duration(secs) * time.Second
		}
	}
	watcher := alert.NewWatcher(engine, orderDA, pollInterval, logger)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")
	subscriber, err := notify.NewNATSSubscriber(natsURL, logger)
	if err != nil {
		log.Fatalf("cannot connect to NATS at %s: %v", natsURL, err)
	}

	listener := notify.NewListener(subscriber, broadcaster, orderDA, logger)
	sseHandler := notify.NewSSEHandler(broadcaster, logger)

	handler := admin.NewHandler(tmplMgr, admin.HandlerDeps{
		Query:     queryState,
		Mutations: mutations,
		Orders:    orderDA,
		Marker:    orderDA,
		Badge:     listener,
		Alerts:    engine,
		Poller:    watcher,
		MenuData:  menuDA,
		PackData:  packDA,
		PromoData: promoDA,
		DashData:  dashDA,
		SSE:       sseHandler,
	}, config, logger)

	stack := aqmmw.DefaultStack(aqmmw.StackOptions{
		Logger: logger,
	})
	stack = append(stack, chimw.NoCache)

	watcherHooks := aqm.LifecycleHooks{
		OnStart: watcher.Start,
		OnStop:  watcher.Stop,
	}
	listenerHooks := aqm.LifecycleHooks{
		OnStart: listener.Start,
		OnStop:  listener.Stop,
	}
	subscriberHooks := aqm.LifecycleHooks{
		OnStop: func(context.Context) error {
			return subscriber.Close()
		},
	}

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithRouterConfigurator(func(mux *chi.Mux) {
			aqm.RedirectNotFound(mux, "/")
		}),
		aqm.WithHTTPServerModules("web.port", fileServer, handler),
		aqm.WithLifecycle(tmplMgr, watcherHooks, listenerHooks, subscriberHooks),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
