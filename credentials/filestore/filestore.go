package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/tenants"
)

// Key file names under the data directory. Token and tenant live in separate
// files so each write stays atomic on its own.
const (
	tokenFile  = "authToken"
	tenantFile = "currentTenant.json"
)

var _ credentials.Store = (*Store)(nil)

// Store persists credentials as files under a data directory. Writes go
// through a temp file and rename, so a crash never leaves a torn token.
type Store struct {
	dir string
}

// New creates a file-backed credential store rooted at dir, creating the
// directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("[filestore.New] data directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] MkdirAll")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(creds *credentials.Credentials) error {
	if err := s.writeFile(tokenFile, []byte(creds.Token)); err != nil {
		return errors.Wrap(err, "[Store.Save] write token")
	}
	return s.SaveTenant(creds.Tenant)
}

func (s *Store) SaveTenant(tenant *tenants.Tenant) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return errors.Wrap(err, "[Store.SaveTenant] marshal tenant")
	}
	return errors.Wrap(s.writeFile(tenantFile, data), "[Store.SaveTenant] write tenant")
}

func (s *Store) Load() (*credentials.Credentials, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, tenantFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, credentials.ErrNotFound
		}
		return nil, errors.Wrap(err, "[Store.Load] read tenant")
	}
	var tenant tenants.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		return nil, errors.Wrap(err, "[Store.Load] unmarshal tenant")
	}
	return &credentials.Credentials{Token: token, Tenant: &tenant}, nil
}

func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", credentials.ErrNotFound
		}
		return "", errors.Wrap(err, "[Store.Token] read token")
	}
	if len(data) == 0 {
		return "", credentials.ErrNotFound
	}
	return string(data), nil
}

func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, tenantFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "[Store.Clear] remove "+name)
		}
	}
	return nil
}

func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "Write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "Close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "Rename")
}
