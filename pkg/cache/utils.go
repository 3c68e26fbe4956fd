package cache

import "fmt"

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// GenerateKeyWithParams creates a cache key with multiple parameters.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}

// HistoryKey is the cache key for a symbol's candle history at a range.
func HistoryKey(symbol, rng string) string {
	return GenerateKeyWithParams("history", symbol, rng)
}

// QuoteKey is the cache key for a symbol's latest quote.
func QuoteKey(symbol string) string {
	return GenerateKey("quote", symbol)
}

// ProfileKey is the cache key for a symbol's company profile.
func ProfileKey(symbol string) string {
	return GenerateKey("profile", symbol)
}

// ForecastKey is the cache key for a symbol's forecast at a range.
func ForecastKey(symbol, rng string) string {
	return GenerateKeyWithParams("forecast", symbol, rng)
}
