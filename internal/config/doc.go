// Package config loads and validates the durable gensubs configuration from
// its TOML file. Per-invocation state is intentionally excluded; see the
// runspec package for that.
package config
