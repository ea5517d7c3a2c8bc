package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// Weather is the normalized shape the dashboard displays, independent of
// whichever provider produced it.
type Weather struct {
	City        string `json:"city"`
	Condition   string `json:"condition"` // sunny|cloudy|rainy|snowy|stormy|drizzle
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"` // km/h
	Description string `json:"description"`
}

// conditionNames maps provider condition groups to the dashboard's enum.
// Anything unrecognized falls back to "sunny".
var conditionNames = map[string]string{
	"Clear":        "sunny",
	"Clouds":       "cloudy",
	"Rain":         "rainy",
	"Snow":         "snowy",
	"Thunderstorm": "stormy",
	"Drizzle":      "drizzle",
}

// WeatherCache stores normalized weather responses keyed by city.
// Implementations must treat misses and backend failures identically: a
// cache problem never fails a weather request.
type WeatherCache interface {
	Get(ctx context.Context, key string) (Weather, bool)
	Set(ctx context.Context, key string, w Weather)
}

// RedisWeatherCache is a WeatherCache backed by Redis with a fixed TTL.
type RedisWeatherCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewRedisWeatherCache constructs a RedisWeatherCache.
func NewRedisWeatherCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisWeatherCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisWeatherCache{client: client, ttl: ttl, log: logger}
}

func (c *RedisWeatherCache) Get(ctx context.Context, key string) (Weather, bool) {
	raw, err := c.client.Get(ctx, "weather:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "weather cache read failed", "key", key, "error", err)
		}
		return Weather{}, false
	}
	var w Weather
	if err := json.Unmarshal(raw, &w); err != nil {
		return Weather{}, false
	}
	return w, true
}

func (c *RedisWeatherCache) Set(ctx context.Context, key string, w Weather) {
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, "weather:"+key, raw, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "weather cache write failed", "key", key, "error", err)
	}
}

// WeatherService fetches current conditions for a city and normalizes them
// for display. Provider failures surface as domain.ErrUnavailable — the
// dashboard shows a neutral state, nothing retries.
type WeatherService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   WeatherCache // nil disables caching
}

// NewWeatherService constructs a WeatherService.
// Pass nil as client for a default with a 10-second timeout; pass nil as
// cache to fetch from the provider on every request.
func NewWeatherService(baseURL, apiKey string, client *http.Client, cache WeatherCache) *WeatherService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WeatherService{baseURL: baseURL, apiKey: apiKey, client: client, cache: cache}
}

// providerResponse is the raw shape returned by the weather provider.
type providerResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Name string `json:"name"`
}

// Current returns the normalized weather for a city, consulting the cache
// first when one is configured.
func (s *WeatherService) Current(ctx context.Context, city string) (Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Weather{}, fmt.Errorf("%w: city is required", domain.ErrValidation)
	}

	cacheKey := strings.ToLower(city)
	if s.cache != nil {
		if w, ok := s.cache.Get(ctx, cacheKey); ok {
			return w, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?city="+url.QueryEscape(city), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("service.WeatherService.Current: build request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("%w: weather request failed: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("%w: weather provider returned %d", domain.ErrUnavailable, resp.StatusCode)
	}

	var raw providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Weather{}, fmt.Errorf("%w: undecodable weather response: %v", domain.ErrUnavailable, err)
	}
	if len(raw.Weather) == 0 {
		return Weather{}, fmt.Errorf("%w: weather response missing conditions", domain.ErrUnavailable)
	}

	w := normalize(raw)
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, w)
	}
	return w, nil
}

// normalize converts the provider shape to the display shape: temperatures
// rounded to whole degrees, wind converted from m/s to km/h, and the
// condition mapped onto the dashboard's enum.
func normalize(raw providerResponse) Weather {
	condition, ok := conditionNames[raw.Weather[0].Main]
	if !ok {
		condition = "sunny"
	}
	return Weather{
		City:        raw.Name,
		Condition:   condition,
		Temperature: int(math.Round(raw.Main.Temp)),
		FeelsLike:   int(math.Round(raw.Main.FeelsLike)),
		Humidity:    raw.Main.Humidity,
		WindSpeed:   int(math.Round(raw.Wind.Speed * 3.6)),
		Description: raw.Weather[0].Description,
	}
}
