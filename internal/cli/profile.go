package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rafabene/usermanager/internal/dashboard"
)

// Profile são as preferências persistidas em TOML. Flags explícitas
// sobrescrevem os valores do arquivo.
//
//	api_url = "http://localhost:8080"
//	page_size = 10
//	timeout = "10s"
//	language = "pt-BR"
//	bulk_concurrency = 8
type Profile struct {
	APIURL          string `toml:"api_url"`
	PageSize        int    `toml:"page_size"`
	Timeout         string `toml:"timeout"`
	Language        string `toml:"language"`
	BulkConcurrency int    `toml:"bulk_concurrency"`
}

// DefaultProfile retorna os valores usados quando nada foi configurado
func DefaultProfile() Profile {
	return Profile{
		APIURL:   "http://localhost:8080",
		PageSize: dashboard.DefaultPageSize,
		Timeout:  "10s",
	}
}

// DefaultProfilePath retorna $XDG_CONFIG_HOME/usersctl/config.toml (ou equivalente)
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "usersctl", "config.toml")
}

// LoadProfile lê o arquivo TOML sobre os valores padrão. Um arquivo
// ausente só é erro quando required é verdadeiro.
func LoadProfile(path string, required bool) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return DefaultProfile(), nil
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, fmt.Errorf("unknown keys in profile %s: %v", path, undecoded)
	}

	if _, err := p.TimeoutDuration(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// TimeoutDuration interpreta o timeout; vazio vira 10s
func (p Profile) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", p.Timeout)
	}
	return d, nil
}
