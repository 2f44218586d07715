package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// TokenFileEnv overrides the token file location.
const TokenFileEnv = "ROLLCALL_TOKEN_FILE"

// DefaultPath returns where the token is stored.
//
// Search order:
//  1. ROLLCALL_TOKEN_FILE environment variable
//  2. <user config dir>/rollcall/token.yaml
func DefaultPath() string {
	if path := os.Getenv(TokenFileEnv); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, constants.AppName, "token.yaml")
}

// Store persists credentials in a YAML file readable only by the owner.
// It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store at path, or at DefaultPath when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored credentials. A missing file yields a NotFoundError.
func (s *Store) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Credentials, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- user-configured token file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("token", s.path)
		}
		return nil, errors.WrapIO("read", s.path, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, errors.WrapParse("yaml", s.path, err)
	}
	if strings.TrimSpace(creds.AccessToken) == "" {
		return nil, errors.NewNotFoundError("token", s.path)
	}
	return &creds, nil
}

// Save writes the credentials, replacing any previous file.
func (s *Store) Save(creds *Credentials) error {
	if creds == nil || creds.AccessToken == "" {
		return errors.NewValidationError("access_token", nil, "is required")
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.SecureDirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*.yaml")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(constants.SecureFilePermissions); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("chmod", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

// Clear removes the stored credentials. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", s.path, err)
	}
	return nil
}

// Token returns the stored access token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	creds, err := s.Load()
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return creds.AccessToken, nil
}
