package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ad-revenue-sync/internal/api/handler/router"
	"github.com/vfg2006/ad-revenue-sync/pkg/middleware"
)

// corpo do replace tem só duas datas
const maxReplaceBodyBytes = 4 << 10

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func RevenueSync(service RevenueSyncTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/revenue/sync/append",
			Method:  http.MethodPost,
			Handler: TriggerAppendSync(service),
		},
		{
			Path:        "/v1/revenue/sync/replace",
			Method:      http.MethodPost,
			Handler:     TriggerReplaceSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.LimitBody(maxReplaceBodyBytes)},
		},
		{
			Path:    "/v1/revenue/sync/status",
			Method:  http.MethodGet,
			Handler: GetRevenueSyncStatus(service),
		},
	}
}
