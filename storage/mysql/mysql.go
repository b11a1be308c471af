package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/tursodatabase/go-libsql"
	"golang.org/x/sync/errgroup"

	rubixsql "github.com/kubex/rubix-membersearch/storage/sql"
)

const ProviderKey = "mysql"

var ErrNotConnected = errors.New("mysql: not connected")

// Provider reads from a MySQL replica (or the primary when no replica is
// configured), or from a Turso embedded replica.
type Provider struct {
	PrimaryDSN         string   `json:"primaryDsn"` // user:password@tcp(hostname:port)
	ReplicaDSNs        []string `json:"replicaDsns"`
	Database           string   `json:"database"`
	UseTurso           bool     `json:"useTurso"`
	TursoToken         string   `json:"tursoToken"`
	primaryConnection  *sql.DB
	replicaConnections []*sql.DB
	tursoDir           string
	tursoConnector     *libsql.Connector
	primary            *rubixsql.Provider
	reader             *rubixsql.Provider
}

func (p *Provider) Close() error {
	var errs []error
	for _, replica := range p.replicaConnections {
		errs = append(errs, replica.Close())
	}
	if p.primaryConnection != nil {
		errs = append(errs, p.primaryConnection.Close())
	}
	if p.tursoConnector != nil {
		errs = append(errs, p.tursoConnector.Close())
	}
	if p.tursoDir != "" {
		errs = append(errs, os.RemoveAll(p.tursoDir))
	}
	p.replicaConnections, p.primaryConnection, p.tursoConnector, p.tursoDir = nil, nil, nil, ""
	p.primary, p.reader = nil, nil
	return errors.Join(errs...)
}

// Sync pulls the latest frames into the embedded replica. It is a no-op for MySQL.
func (p *Provider) Sync() error {
	if p.tursoConnector != nil {
		return p.tursoConnector.Sync()
	}
	return nil
}

func (p *Provider) Connect() error {
	if p.primaryConnection == nil {

		var err error
		if p.UseTurso {
			dbName := "rubix.db"
			primaryUrl := "libsql://" + p.Database + ".turso.io"
			authToken := p.TursoToken

			p.tursoDir, err = os.MkdirTemp("", "libsql-*")
			if err != nil {
				return fmt.Errorf("error creating temporary directory: %s", err)
			}

			dbPath := filepath.Join(p.tursoDir, dbName)
			p.tursoConnector, err = libsql.NewEmbeddedReplicaConnector(dbPath, primaryUrl, libsql.WithAuthToken(authToken))
			if err != nil {
				return err
			}

			if err = p.Sync(); err != nil {
				return err
			}

			p.primaryConnection = sql.OpenDB(p.tursoConnector)
		} else {
			p.primaryConnection, err = sql.Open("mysql", p.dsn(p.PrimaryDSN))
			if err != nil {
				return err
			}

			for _, replicaDSN := range p.ReplicaDSNs {
				replica, openErr := sql.Open("mysql", p.dsn(replicaDSN))
				if openErr != nil {
					return openErr
				}
				p.replicaConnections = append(p.replicaConnections, replica)
			}
		}
	}

	if err := p.ping(context.Background()); err != nil {
		return err
	}

	p.primary = rubixsql.NewFromDB(p.primaryConnection, p.UseTurso)
	p.reader = p.primary
	if len(p.replicaConnections) > 0 {
		p.reader = rubixsql.NewFromDB(p.replicaConnections[0], false)
	}
	return nil
}

// ping checks the primary and every replica concurrently.
func (p *Provider) ping(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, db := range append([]*sql.DB{p.primaryConnection}, p.replicaConnections...) {
		db := db
		g.Go(func() error {
			return db.PingContext(ctx)
		})
	}
	return g.Wait()
}

func (p *Provider) dsn(host string) string {
	return host + "/" + p.Database + "?parseTime=true"
}

func FromJson(data []byte) (*Provider, error) {
	p := &Provider{}
	if err := json.Unmarshal(data, &p); err == nil {
		return p, nil
	} else {
		return nil, err
	}
}
