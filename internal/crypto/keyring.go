package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "rebancariza"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the system keyring, e.g. on headless machines
	EnvKey = "REBANCARIZA_DB_KEY"
)

var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring returns the environment keyring when EnvKey is set, and the
// system keyring otherwise
func NewKeyring() Keyring {
	env := envKeyring{}
	if env.IsAvailable() {
		return env
	}
	return systemKeyring{}
}

// systemKeyring stores the key in the OS secret store (Keychain, Secret
// Service, Windows Credential Manager)
type systemKeyring struct{}

func (systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}
	if key == "" {
		return "", errors.New("encryption key is empty")
	}
	return key, nil
}

func (systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}
	return nil
}

func (systemKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring with a throwaway entry
func (systemKeyring) IsAvailable() bool {
	testKey := "__rebancariza_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}

// envKeyring reads the key from EnvKey
type envKeyring struct{}

func (envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrKeyNotFound, EnvKey)
	}
	return key, nil
}

func (envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("key comes from %s; change the environment variable instead", EnvKey)
}

func (envKeyring) DeleteKey() error {
	return fmt.Errorf("key comes from %s; unset the environment variable instead", EnvKey)
}

func (envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
