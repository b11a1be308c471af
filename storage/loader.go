package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kubex/rubix-membersearch/storage/backend"
	"github.com/kubex/rubix-membersearch/storage/datastore"
	"github.com/kubex/rubix-membersearch/storage/jsonfile"
	"github.com/kubex/rubix-membersearch/storage/mysql"
	"github.com/kubex/rubix-membersearch/storage/sql"
)

var ErrUnknownProvider = errors.New("unable to load storage provider")

// Load builds a provider from {"provider": "<key>", "configuration": {...}}.
// The returned provider is not connected.
func Load(jsonBytes []byte) (Provider, error) {

	loader := struct {
		Provider      string
		Configuration *json.RawMessage
	}{}

	err := json.Unmarshal(jsonBytes, &loader)
	if err != nil {
		return nil, err
	}

	cfg := []byte("{}")
	if loader.Configuration != nil {
		cfg = *loader.Configuration
	}

	switch loader.Provider {
	case sql.ProviderKey:
		return sql.FromJson(cfg)
	case mysql.ProviderKey:
		return mysql.FromJson(cfg)
	case jsonfile.ProviderKey:
		return jsonfile.FromJson(cfg)
	case datastore.ProviderKey:
		return datastore.FromJson(cfg)
	case backend.ProviderKey:
		return backend.FromJson(cfg)
	}

	return nil, fmt.Errorf("%w '%s'", ErrUnknownProvider, loader.Provider)
}
