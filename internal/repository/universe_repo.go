package repository

import (
	"fmt"
	"os"

	"pullback-trading/internal/dto"

	"gopkg.in/yaml.v3"
)

// UniverseRepository loads the ticker universe from the configured YAML
// file (tickers: [{symbol, name}]).
type UniverseRepository interface {
	Load() ([]dto.TickerInfo, error)
}

type universeRepository struct {
	path string
}

func NewUniverseRepository(path string) UniverseRepository {
	return &universeRepository{path: path}
}

type universeFile struct {
	Tickers []dto.TickerInfo `yaml:"tickers"`
}

func (r *universeRepository) Load() ([]dto.TickerInfo, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file %s: %w", r.path, err)
	}

	var file universeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse universe file %s: %w", r.path, err)
	}

	tickers := make([]dto.TickerInfo, 0, len(file.Tickers))
	for _, t := range file.Tickers {
		if t.Symbol == "" {
			continue
		}
		tickers = append(tickers, t)
	}
	return tickers, nil
}
