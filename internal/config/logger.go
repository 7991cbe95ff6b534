package config

import "go.uber.org/zap"

// NewLogger creates a zap logger for the given environment.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
