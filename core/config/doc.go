// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/councilkit/council/core/config"
//
//	type BillingConfig struct {
//		RedisURL string `env:"REDIS_URL,required"`
//		Prefix   string `env:"USAGE_PREFIX" envDefault:"usage:"`
//	}
//
//	func main() {
//		var billing BillingConfig
//
//		// Load with error handling
//		if err := config.Load(&billing); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&billing)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 BillingConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 BillingConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently, so each component can declare
// its own configuration struct without coordinating with the others.
package config
