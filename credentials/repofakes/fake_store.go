package repofakes

import (
	"sync"

	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/tenants"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests.
type FakeStore struct {
	token  string
	tenant *tenants.Tenant
	lock   sync.RWMutex

	// SaveErr, when set, is returned by Save and SaveTenant.
	SaveErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) Save(creds *credentials.Credentials) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.token = creds.Token
	s.tenant = creds.Tenant
	return nil
}

func (s *FakeStore) SaveTenant(tenant *tenants.Tenant) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.tenant = tenant
	return nil
}

func (s *FakeStore) Load() (*credentials.Credentials, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.token == "" || s.tenant == nil {
		return nil, credentials.ErrNotFound
	}
	return &credentials.Credentials{Token: s.token, Tenant: s.tenant}, nil
}

func (s *FakeStore) Token() (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.token == "" {
		return "", credentials.ErrNotFound
	}
	return s.token, nil
}

func (s *FakeStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.token = ""
	s.tenant = nil
	return nil
}
