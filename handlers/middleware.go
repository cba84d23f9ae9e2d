package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"serenity/config"
	"serenity/metrics"
	"serenity/models"
	"serenity/utils"
)

// CORS 跨域中间件，未配置来源时允许所有来源
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.HTTP.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", sessionHeader},
		ExposedHeaders:   []string{sessionHeader},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           300,
	})
}

// RateLimit 按IP限流，超限时返回统一的JSON响应
func RateLimit(cfg *config.Config) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.HTTP.RateLimitRequests,
		time.Duration(cfg.HTTP.RateLimitWindowSec)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, "too many requests", map[string]interface{}{})
		}),
	)
}

// Metrics 记录请求耗时，按路由模板聚合
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, route, strconv.Itoa(status), time.Since(start).Seconds())
		})
	}
}
