package credentials

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// ServiceName is the keychain service under which tokens are stored.
const ServiceName = "opsagent"

// ErrTokenNotFound indicates no token is stored for the requested service.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists API tokens.
type TokenStore interface {
	GetToken(service string) (string, error)
	SetToken(service, token string) error
	DeleteToken(service string) error
}

// KeyringStore implements TokenStore using the OS keychain.
type KeyringStore struct {
	serviceName string
}

// NewKeyringStore creates a KeyringStore. An empty serviceName falls back to
// the default ServiceName.
func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) GetToken(service string) (string, error) {
	token, err := keyring.Get(k.serviceName, service)
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", err
}

func (k *KeyringStore) SetToken(service, token string) error {
	return keyring.Set(k.serviceName, service, token)
}

func (k *KeyringStore) DeleteToken(service string) error {
	err := keyring.Delete(k.serviceName, service)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

// MemoryStore is an in-memory TokenStore for tests.
type MemoryStore struct {
	tokens map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: map[string]string{}}
}

func (m *MemoryStore) GetToken(service string) (string, error) {
	token, ok := m.tokens[service]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MemoryStore) SetToken(service, token string) error {
	m.tokens[service] = token
	return nil
}

func (m *MemoryStore) DeleteToken(service string) error {
	if _, ok := m.tokens[service]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, service)
	return nil
}
