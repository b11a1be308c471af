package sql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/tursodatabase/go-libsql"
)

const ProviderKey = "sql"

var ErrNotConnected = errors.New("sql: not connected")

// Provider reads memberships and users from a libsql (sqlite) file or a MySQL database.
type Provider struct {
	PrimaryDSN        string `json:"primaryDsn"` // user:password@tcp(hostname:port) or file:/path/to.db
	Database          string `json:"database"`
	SqlLite           bool   `json:"sqlLite"`
	primaryConnection *sql.DB
}

// NewFromDB wraps an already opened connection. Close on the returned provider closes db.
func NewFromDB(db *sql.DB, sqlLite bool) *Provider {
	return &Provider{SqlLite: sqlLite, primaryConnection: db}
}

func (p *Provider) Close() error {
	var errs []error
	if p.primaryConnection != nil {
		errs = append(errs, p.primaryConnection.Close())
	}
	return errors.Join(errs...)
}

func (p *Provider) Connect() error {
	if p.primaryConnection == nil {
		var err error
		if p.SqlLite {
			p.primaryConnection, err = sql.Open("libsql", p.PrimaryDSN)
			if err != nil {
				return fmt.Errorf("failed to open db %s", err)
			}
		} else {
			p.primaryConnection, err = sql.Open("mysql", p.PrimaryDSN+"/"+p.Database+"?parseTime=true")
		}

		// Handle any errors that may occur during connection
		if err != nil {
			return err
		}
	}

	// Ping the database to ensure a successful connection
	return p.primaryConnection.Ping()
}

// Initialize connects and, for sqlite, applies any outstanding schema migrations.
// MySQL schemas are managed outside this package.
func (p *Provider) Initialize() error {
	if err := p.Connect(); err != nil {
		return err
	}

	if !p.SqlLite {
		return nil
	}

	tblName := ""
	err := p.primaryConnection.QueryRow("SELECT tbl_name FROM sqlite_master WHERE type='table' AND name = 'rubix_migrations';").Scan(&tblName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if tblName == "" {
		if _, err = p.primaryConnection.Exec("create table rubix_migrations (migration varchar(255) not null primary key, applied int not null)"); err != nil {
			return err
		}
	}

	processed, err := p.appliedMigrations()
	if err != nil {
		return err
	}

	for _, query := range migrations() {
		if !processed[query.key] {
			if _, migErr := p.primaryConnection.Exec(query.query); migErr != nil {
				return migErr
			}
			if _, migErr := p.primaryConnection.Exec("INSERT INTO rubix_migrations (migration, applied) VALUES (?, 1);", query.key); migErr != nil {
				return migErr
			}
		}
	}

	return nil
}

func (p *Provider) appliedMigrations() (map[string]bool, error) {
	rows, err := p.primaryConnection.Query("SELECT migration, applied FROM rubix_migrations;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	processed := make(map[string]bool)
	for rows.Next() {
		var migKey string
		var applied int
		if scanErr := rows.Scan(&migKey, &applied); scanErr != nil {
			return nil, scanErr
		}
		processed[migKey] = applied == 1
	}
	return processed, rows.Err()
}

func FromJson(data []byte) (*Provider, error) {
	p := &Provider{}
	if err := json.Unmarshal(data, &p); err == nil {
		return p, nil
	} else {
		return nil, err
	}
}
