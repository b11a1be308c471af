package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
)

const ProviderKey = "datastore"

const (
	kindMembership = "RxMembership"
	kindUser       = "RxUser"
)

var ErrReadFailure = errors.New("datastore: read failure")
var ErrNotConnected = errors.New("datastore: not connected")

type Provider struct {
	client    dataStoreClient
	ProjectID string `json:"projectId"`
}

func FromJson(data []byte) (*Provider, error) {
	p := &Provider{}
	if err := json.Unmarshal(data, p); err == nil {
		return p, nil
	} else {
		return nil, err
	}
}

func (p *Provider) Init() error {
	client, err := datastore.NewClient(context.Background(), p.ProjectID,
		option.WithGRPCDialOption(grpc.WithReturnConnectionError()),
		option.WithGRPCDialOption(grpc.WithTimeout(time.Second*5)),
		option.WithGRPCDialOption(grpc.WithDisableRetry()))
	if err != nil {
		return err
	}
	p.client = client
	return nil
}

func (p *Provider) Connect() error {
	if p.client != nil {
		return nil
	}
	return p.Init()
}

func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

type membershipStore struct {
	ID     string
	UserID string
	Role   string
}

func (m membershipStore) dsID() *datastore.Key {
	return datastore.NameKey(kindMembership, m.ID, nil)
}

type userStore struct {
	ID    string
	Name  string
	Email string
}

func (u userStore) dsID() *datastore.Key {
	return datastore.NameKey(kindUser, u.ID, nil)
}

type dataStoreClient interface {
	io.Closer
	Put(ctx context.Context, key *datastore.Key, src interface{}) (*datastore.Key, error)
	GetAll(ctx context.Context, q *datastore.Query, dst interface{}) (keys []*datastore.Key, err error)
}
