// Package config handles application configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/exchange/binance"
	"github.com/raykavin/toppairs/pkg/marketdata/coinmarketcap"
	"github.com/raykavin/toppairs/pkg/watchlist"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Constants for configuration
const (
	EnvPrefix         = "TOPPAIRS"
	DefaultConfigName = "toppairs"
	DefaultAPIKey     = "xxxx"
	DefaultTimeout    = "30s"
	DefaultLimit      = 120
	DefaultDotEnvFile = ".env"
)

// Config holds the application configuration
type Config struct {
	CMC       CMCConfig
	Binance   BinanceConfig
	Watchlist WatchlistConfig
	Telegram  TelegramConfig
	Mail      MailConfig
}

// CMCConfig holds the CoinMarketCap listings configuration
type CMCConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Request core.ListingsRequest
}

// BinanceConfig holds the Binance market catalog configuration
type BinanceConfig struct {
	Market     binance.MarketType
	ActiveOnly bool
	UseTestnet bool
	BaseURL    string
}

// WatchlistConfig holds the matching and output file configuration
type WatchlistConfig struct {
	File        string
	Limit       int
	Quote       string
	Stablecoins []string
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	Enabled bool
	Token   string
	Users   []int
}

// MailConfig holds SMTP notification configuration
type MailConfig struct {
	Enabled  bool
	Server   string
	Port     int
	From     string
	To       string
	Password string
}

// Load reads the configuration from defaults, an optional config file and the
// environment. Variables found in a .env file are loaded first and never
// override the process environment. When path is empty a toppairs.{yaml,json}
// in the working directory is used if present.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DefaultDotEnvFile); err != nil {
		return nil, err
	}

	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the API key keeps its historical unprefixed name
	_ = v.BindEnv("cmc.api_key", EnvPrefix+"_CMC_API_KEY", "CMC_API_KEY")

	request := coinmarketcap.DefaultRequest()

	v.SetDefault("cmc.api_key", DefaultAPIKey)
	v.SetDefault("cmc.base_url", coinmarketcap.DefaultBaseURL)
	v.SetDefault("cmc.timeout", DefaultTimeout)
	v.SetDefault("cmc.start", request.Start)
	v.SetDefault("cmc.limit", request.Limit)
	v.SetDefault("cmc.convert", request.Convert)
	v.SetDefault("cmc.sort", request.Sort)
	v.SetDefault("cmc.sort_dir", request.SortDir)

	v.SetDefault("binance.market", string(binance.MarketTypeSpot))
	v.SetDefault("binance.active_only", false)
	v.SetDefault("binance.testnet", false)
	v.SetDefault("binance.base_url", "")

	v.SetDefault("watchlist.file", watchlist.DefaultPath)
	v.SetDefault("watchlist.limit", DefaultLimit)
	v.SetDefault("watchlist.quote", core.DefaultQuote)
	v.SetDefault("watchlist.stablecoins", core.DefaultStablecoins)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.users", []string{})

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.server", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.password", "")

	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	timeout, err := str2duration.ParseDuration(v.GetString("cmc.timeout"))
	if err != nil {
		return nil, fmt.Errorf("cmc.timeout: %w", err)
	}

	users, err := parseUsers(v.GetStringSlice("telegram.users"))
	if err != nil {
		return nil, err
	}

	return &Config{
		CMC: CMCConfig{
			APIKey:  v.GetString("cmc.api_key"),
			BaseURL: v.GetString("cmc.base_url"),
			Timeout: timeout,
			Request: core.ListingsRequest{
				Start:   v.GetInt("cmc.start"),
				Limit:   v.GetInt("cmc.limit"),
				Convert: v.GetString("cmc.convert"),
				Sort:    v.GetString("cmc.sort"),
				SortDir: v.GetString("cmc.sort_dir"),
			},
		},
		Binance: BinanceConfig{
			Market:     binance.MarketType(strings.ToLower(v.GetString("binance.market"))),
			ActiveOnly: v.GetBool("binance.active_only"),
			UseTestnet: v.GetBool("binance.testnet"),
			BaseURL:    v.GetString("binance.base_url"),
		},
		Watchlist: WatchlistConfig{
			File:        v.GetString("watchlist.file"),
			Limit:       v.GetInt("watchlist.limit"),
			Quote:       strings.ToUpper(v.GetString("watchlist.quote")),
			Stablecoins: splitList(v.GetStringSlice("watchlist.stablecoins")),
		},
		Telegram: TelegramConfig{
			Enabled: v.GetBool("telegram.enabled"),
			Token:   v.GetString("telegram.token"),
			Users:   users,
		},
		Mail: MailConfig{
			Enabled:  v.GetBool("mail.enabled"),
			Server:   v.GetString("mail.server"),
			Port:     v.GetInt("mail.port"),
			From:     v.GetString("mail.from"),
			To:       v.GetString("mail.to"),
			Password: v.GetString("mail.password"),
		},
	}, nil
}

// Validate checks the configuration before any request is made
func (c *Config) Validate() error {
	if err := coinmarketcap.ValidateRequest(c.CMC.Request); err != nil {
		return err
	}
	if c.CMC.Timeout < 0 {
		return fmt.Errorf("cmc.timeout must not be negative, got %s", c.CMC.Timeout)
	}

	switch c.Binance.Market {
	case binance.MarketTypeSpot, binance.MarketTypeFutures:
	default:
		return fmt.Errorf("binance.market must be %q or %q, got %q",
			binance.MarketTypeSpot, binance.MarketTypeFutures, c.Binance.Market)
	}

	if c.Watchlist.File == "" {
		return errors.New("watchlist.file must not be empty")
	}
	if c.Watchlist.Limit < 0 {
		return fmt.Errorf("watchlist.limit must not be negative, got %d", c.Watchlist.Limit)
	}
	if c.Watchlist.Quote == "" {
		return errors.New("watchlist.quote must not be empty")
	}

	if c.Telegram.Enabled {
		if c.Telegram.Token == "" {
			return errors.New("telegram.token is required when telegram is enabled")
		}
		if len(c.Telegram.Users) == 0 {
			return errors.New("telegram.users is required when telegram is enabled")
		}
	}

	if c.Mail.Enabled && (c.Mail.Server == "" || c.Mail.From == "" || c.Mail.To == "") {
		return errors.New("mail.server, mail.from and mail.to are required when mail is enabled")
	}

	return nil
}

// HasPlaceholderKey reports whether no real API key was configured
func (c *Config) HasPlaceholderKey() bool {
	return c.CMC.APIKey == "" || c.CMC.APIKey == DefaultAPIKey
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func parseUsers(values []string) ([]int, error) {
	fields := splitList(values)
	users := make([]int, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("telegram.users: invalid user id %q", field)
		}
		users = append(users, id)
	}
	return users, nil
}

// splitList flattens list values given as "A,B" or "A B", as they arrive from
// the environment
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return out
}
