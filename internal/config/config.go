// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	EvaluateEnvConfig
	CompareEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EvaluateEnvConfig holds defaults for the evaluate command.
type EvaluateEnvConfig struct {
	// Metrics evaluated when none are given on the command line.
	DefaultMetrics []string `env:"ELINOR_DEFAULT_METRICS" envSeparator:"," envDefault:"success@1,success@5,success@10,precision@5,precision@10,recall@5,recall@10,ap,rr,ndcg@10,bpref"`
}

// CompareEnvConfig holds defaults for the resampling procedures of the
// compare command.
type CompareEnvConfig struct {
	NResamples int `env:"ELINOR_N_RESAMPLES" envDefault:"10000"`
	NTrials    int `env:"ELINOR_N_TRIALS" envDefault:"10000"`
	// RandomState seeds the resampling procedures when nonzero; zero draws
	// a fresh seed per invocation.
	RandomState uint64 `env:"ELINOR_RANDOM_STATE" envDefault:"0"`
	Alpha       float64 `env:"ELINOR_ALPHA" envDefault:"0.05"`
}
