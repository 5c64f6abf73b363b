package credstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// Store persists the GitHub credential as a TOML file under the user config
// directory. The file is the atomic unit: written via temp file + rename,
// absent file means no credential.
type Store struct {
	path string
}

var _ interfaces.CredentialStore = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the credential file location under the OS user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve user config directory")
	}
	return filepath.Join(dir, "checkstat", "github.toml"), nil
}

func (x *Store) Load(_ context.Context) (*model.Credential, error) {
	data, err := os.ReadFile(filepath.Clean(x.path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read credential file", goerr.V("path", x.path))
	}

	var cred model.Credential
	if err := toml.Unmarshal(data, &cred); err != nil {
		return nil, goerr.Wrap(err, "failed to parse credential file", goerr.V("path", x.path))
	}
	if err := cred.Validate(); err != nil {
		return nil, goerr.Wrap(err, "credential file is malformed", goerr.V("path", x.path))
	}

	return &cred, nil
}

func (x *Store) Save(_ context.Context, cred *model.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cred); err != nil {
		return goerr.Wrap(err, "failed to encode credential")
	}

	dir := filepath.Dir(x.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return goerr.Wrap(err, "failed to create config directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, ".github-*.toml")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary credential file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to write credential file")
	}
	if err := tmp.Chmod(0600); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to set credential file mode")
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to close credential file")
	}

	if err := os.Rename(tmpName, x.path); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace credential file", goerr.V("path", x.path))
	}

	return nil
}

func (x *Store) Clear(_ context.Context) error {
	if err := os.Remove(x.path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove credential file", goerr.V("path", x.path))
	}
	return nil
}
