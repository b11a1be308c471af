package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const ProviderKey = "jsonfile"

var (
	ErrLoad   = errors.New("unable to load")
	ErrDecode = errors.New("unable to decode")
)

// Provider reads memberships.json and users.json from a data directory.
type Provider struct {
	dataDirectory string
}

func FromJson(data []byte) (*Provider, error) {
	cfg := struct {
		DataDirectory string `json:"dataDirectory"`
	}{}

	if err := json.Unmarshal(data, &cfg); err == nil {
		return New(cfg.DataDirectory), nil
	} else {
		return nil, err
	}
}

func New(dataDirectory string) *Provider {
	return &Provider{dataDirectory: dataDirectory}
}

func (p *Provider) Connect() error {
	info, err := os.Stat(p.dataDirectory)
	if err != nil {
		return fmt.Errorf("%w data directory: %w", ErrLoad, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w data directory: %s is not a directory", ErrLoad, p.dataDirectory)
	}
	return nil
}

func (p *Provider) Close() error { return nil }

func (p *Provider) filePath(dataType string) string {
	return strings.TrimRight(p.dataDirectory, "/") + "/" + dataType + ".json"
}

func (p *Provider) fileData(dataType string) ([]byte, error) {
	jsonPath := p.filePath(dataType)
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s.json @ %s: %w", ErrLoad, dataType, jsonPath, err)
	}
	return bytes, nil
}
