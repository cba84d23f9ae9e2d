// Package scraper 视频、音乐、文章三个内容源，抓取失败时返回精选的静态内容
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"serenity/config"
	"serenity/logger"
	"serenity/metrics"
)

// maxBodyBytes 单次抓取读取的最大字节数
const maxBodyBytes = 8 << 20

// Options 内容源通用配置
type Options struct {
	Timeout        time.Duration
	UserAgent      string
	BreakerFails   uint32
	BreakerOpenFor time.Duration
	Metrics        *metrics.Metrics
}

// OptionsFromConfig 从配置生成内容源选项
func OptionsFromConfig(cfg *config.Config, m *metrics.Metrics) Options {
	return Options{
		Timeout:        time.Duration(cfg.Scraper.TimeoutSec) * time.Second,
		UserAgent:      cfg.Scraper.UserAgent,
		BreakerFails:   cfg.Scraper.BreakerFails,
		BreakerOpenFor: time.Duration(cfg.Scraper.BreakerOpenSec) * time.Second,
		Metrics:        m,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if o.BreakerFails == 0 {
		o.BreakerFails = 5
	}
	if o.BreakerOpenFor <= 0 {
		o.BreakerOpenFor = time.Minute
	}
	return o
}

// fetcher 带超时和熔断的HTTP抓取
type fetcher struct {
	name      string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[[]byte]
	metrics   *metrics.Metrics
}

func newFetcher(name string, opts Options) *fetcher {
	opts = opts.withDefaults()
	f := &fetcher{
		name:      name,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		client:    &http.Client{Timeout: opts.Timeout},
		metrics:   opts.Metrics,
	}
	f.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("content source circuit breaker state changed", "source", name, "from", from.String(), "to", to.String())
			f.metrics.SetBreakerState(name, int(to))
		},
	})
	return f
}

// do 发送请求并返回响应体，非200视为失败
func (f *fetcher) do(req *http.Request) ([]byte, error) {
	return f.breaker.Execute(func() ([]byte, error) {
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		if req.Header.Get("Accept") == "" {
			req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s returned status %d", f.name, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	})
}

// withTimeout 为单次抓取加上超时
func (f *fetcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.timeout)
}

// State 当前熔断器状态
func (f *fetcher) State() gobreaker.State {
	return f.breaker.State()
}
