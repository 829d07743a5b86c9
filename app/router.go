package app

import (
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-broadcast/app/metrics"
	controlhandlers "github.com/Black-And-White-Club/frolf-broadcast/app/modules/control/infrastructure/handlers"
)

const (
	readHeaderTimeout = 5 * time.Second
	// controlRate bounds operator requests per route.
	controlRate  = 10
	controlBurst = 5
)

// newServers builds the control surface and, when a separate metrics address
// is configured, a dedicated metrics listener. Otherwise /metrics is served by
// the control surface.
func (app *App) newServers() (*http.Server, *http.Server) {
	handlers := controlhandlers.NewHandlers(app.Coordinator, app.Logger, app.tracer)
	metricsHandler := metrics.Handler(app.Registry)

	opts := controlhandlers.RouterOptions{
		AllowedOrigins:    app.Config.HTTP.AllowedOrigins,
		RequestsPerSecond: controlRate,
		Burst:             controlBurst,
	}
	var metricsServer *http.Server
	addr := app.Config.Observability.MetricsAddress
	if addr == "" || addr == app.Config.HTTP.Addr {
		opts.MetricsHandler = metricsHandler
	} else {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	}

	server := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           controlhandlers.NewRouter(handlers, opts),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return server, metricsServer
}
