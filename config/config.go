package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath 默认配置文件路径
const DefaultPath = "config.yaml"

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Enabled         bool   `yaml:"enabled"`
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
		AutoMigrate     bool   `yaml:"auto_migrate"`      // 启动时自动建表
	} `yaml:"database"`
	Cache struct {
		MaxSize int `yaml:"max_size"` // 最大缓存条目数
		TTLSec  int `yaml:"ttl_sec"`  // 缓存过期时间，单位：秒
	} `yaml:"cache"`
	Scraper struct {
		TimeoutSec     int    `yaml:"timeout_sec"`      // 单个内容源请求超时，单位：秒
		UserAgent      string `yaml:"user_agent"`       // 抓取时使用的UA
		YouTubeURL     string `yaml:"youtube_url"`      // YouTube搜索地址
		DuckDuckGoURL  string `yaml:"duckduckgo_url"`   // DuckDuckGo HTML搜索地址
		MaxVideos      int    `yaml:"max_videos"`       // 每次推荐的视频数
		MaxMusic       int    `yaml:"max_music"`        // 每次推荐的音乐数
		MaxArticles    int    `yaml:"max_articles"`     // 每次推荐的文章数
		BreakerFails   uint32 `yaml:"breaker_fails"`    // 连续失败多少次后熔断
		BreakerOpenSec int    `yaml:"breaker_open_sec"` // 熔断持续时间，单位：秒
	} `yaml:"scraper"`
	Stress struct {
		ClassifierURL string `yaml:"classifier_url"` // 外部表情分类服务地址
		APIKey        string `yaml:"api_key"`
		TimeoutSec    int    `yaml:"timeout_sec"` // 分类请求超时，单位：秒
		MaxHistory    int    `yaml:"max_history"` // 压力读数历史长度
	} `yaml:"stress"`
	Chat struct {
		TranscriptLimit int   `yaml:"transcript_limit"` // 单个连接保留的对话轮数
		CategoryLimit   int   `yaml:"category_limit"`   // 单个连接保留的分类数
		MaxMessageBytes int64 `yaml:"max_message_bytes"`
	} `yaml:"chat"`
	HTTP struct {
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		RateLimitRequests  int      `yaml:"rate_limit_requests"` // 每个IP在窗口内的最大请求数
		RateLimitWindowSec int      `yaml:"rate_limit_window_sec"`
	} `yaml:"http"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`  // 请求超时，单位：秒
		ResponseSec int `yaml:"response_sec"` // 响应超时，单位：秒
		IdleSec     int `yaml:"idle_sec"`     // 空闲超时，单位：秒
	} `yaml:"timeouts"`
	Debug struct {
		Enabled     bool `yaml:"enabled"`       // 是否启用debug模式
		WarmFreqSec int  `yaml:"warm_freq_sec"` // debug模式下缓存预热频率，单位：秒
	} `yaml:"debug"`
	Scheduler struct {
		Enabled          bool `yaml:"enabled"`
		CheckIntervalSec int  `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
		WarmHour         int  `yaml:"warm_hour"`          // 每天预热缓存的小时（0-23）
		WarmMinute       int  `yaml:"warm_minute"`        // 每天预热缓存的分钟（0-59）
		Concurrency      int  `yaml:"concurrency"`        // 预热并发数
	} `yaml:"scheduler"`
}

func Load() *Config {
	return LoadFile(DefaultPath)
}

// LoadFile 从指定路径加载配置，文件不存在时完全使用环境变量
func LoadFile(path string) *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		// 如果config.yaml不存在，则完全从环境变量加载配置
		log.Printf("config file %s not found, loading from environment", path)
		applyEnv(&cfg)
		applyDefaults(&cfg)
		return &cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("Error loading %s: %v, falling back to environment variables", path, err)
		cfg = Config{}
	} else {
		log.Printf("Loading configuration from %s", path)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg
}

// applyEnv 从环境变量中加载敏感信息，覆盖配置文件中的值
func applyEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	// 数据库用户名和密码
	if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
		cfg.DB.Username = envUsername
	}
	if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
		cfg.DB.Password = envPassword
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
		cfg.DB.Enabled = true
	}

	// 表情分类服务
	if url := os.Getenv("CLASSIFIER_URL"); url != "" {
		cfg.Stress.ClassifierURL = url
	}
	if apiKey := os.Getenv("CLASSIFIER_API_KEY"); apiKey != "" {
		cfg.Stress.APIKey = apiKey
	}
}

// applyDefaults 为未配置的字段设置默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// 计算 DB.DSN 字段
	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		parseTime := ""
		if cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}
		cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}

	if cfg.Cache.MaxSize <= 0 {
		cfg.Cache.MaxSize = 100
	}
	if cfg.Cache.TTLSec <= 0 {
		cfg.Cache.TTLSec = 86400
	}

	if cfg.Scraper.TimeoutSec <= 0 {
		cfg.Scraper.TimeoutSec = 10
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if cfg.Scraper.YouTubeURL == "" {
		cfg.Scraper.YouTubeURL = "https://www.youtube.com/results"
	}
	if cfg.Scraper.DuckDuckGoURL == "" {
		cfg.Scraper.DuckDuckGoURL = "https://html.duckduckgo.com/html/"
	}
	if cfg.Scraper.MaxVideos <= 0 {
		cfg.Scraper.MaxVideos = 3
	}
	if cfg.Scraper.MaxMusic <= 0 {
		cfg.Scraper.MaxMusic = 3
	}
	if cfg.Scraper.MaxArticles <= 0 {
		cfg.Scraper.MaxArticles = 2
	}
	if cfg.Scraper.BreakerFails == 0 {
		cfg.Scraper.BreakerFails = 5
	}
	if cfg.Scraper.BreakerOpenSec <= 0 {
		cfg.Scraper.BreakerOpenSec = 60
	}

	if cfg.Stress.TimeoutSec <= 0 {
		cfg.Stress.TimeoutSec = 15
	}
	if cfg.Stress.MaxHistory <= 0 {
		cfg.Stress.MaxHistory = 30
	}

	if cfg.Chat.TranscriptLimit <= 0 {
		cfg.Chat.TranscriptLimit = 50
	}
	if cfg.Chat.CategoryLimit <= 0 {
		cfg.Chat.CategoryLimit = 30
	}
	if cfg.Chat.MaxMessageBytes <= 0 {
		cfg.Chat.MaxMessageBytes = 4096
	}

	if cfg.HTTP.RateLimitRequests <= 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindowSec <= 0 {
		cfg.HTTP.RateLimitWindowSec = 60
	}

	if cfg.Timeouts.RequestSec <= 0 {
		cfg.Timeouts.RequestSec = 30
	}
	if cfg.Timeouts.ResponseSec <= 0 {
		cfg.Timeouts.ResponseSec = 30
	}
	if cfg.Timeouts.IdleSec <= 0 {
		cfg.Timeouts.IdleSec = 120
	}

	if cfg.Debug.WarmFreqSec <= 0 {
		cfg.Debug.WarmFreqSec = 1800
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
	if cfg.Scheduler.Concurrency <= 0 {
		cfg.Scheduler.Concurrency = 3
	}
}
