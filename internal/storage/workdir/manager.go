// Package workdir persists one artifact bundle per generation request
// under a working directory, purely as an ambient convenience for the
// CLI/HTTP front end — the core pipeline never reads it back. Resolution
// order: env var -> user config file -> OS default path.
package workdir

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manager resolves and maintains the working directory a Run Ledger
// writes into.
type Manager struct {
	path    string
	cfgPath string
	log     *slog.Logger
}

// NewManager resolves the initial workdir using priority:
//  1. env TOPOGEN_WORKDIR
//  2. workdir entry of the user config file (~/.config/topogen/workdir.yaml)
//  3. default OS path under the user's home directory
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{log: log}
	m.cfgPath = userConfigPath()
	m.path = resolveInitialPath(m.cfgPath)
	return m
}

func (m *Manager) Path() string {
	return m.path
}

// SetPath updates the working directory and persists the choice so the
// next invocation picks it up without the env var.
func (m *Manager) SetPath(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return errors.New("empty path")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return err
	}
	m.path = abs
	if err := ensureDir(filepath.Dir(m.cfgPath)); err != nil {
		return err
	}
	cfg := map[string]string{"workdir": m.path}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(m.cfgPath, b, 0o600)
}

// EnsureStructure makes sure the "runs" subdirectory exists.
func (m *Manager) EnsureStructure() error {
	if m.path == "" {
		return errors.New("workdir not set")
	}
	if err := ensureDir(m.path); err != nil {
		return err
	}
	return ensureDir(filepath.Join(m.path, "runs"))
}

// RunRecord is the ambient, non-authoritative record of one generation
// request: the request ids assigned at submit time, and where its
// output artifacts were written. Never consumed by the core pipeline.
type RunRecord struct {
	ID          string    `yaml:"id"`
	StartedAt   time.Time `yaml:"startedAt"`
	DeviceCount int       `yaml:"deviceCount"`
	LinkCount   int       `yaml:"linkCount"`
	OutputDir   string    `yaml:"outputDir"`
}

// NewRun allocates a fresh run id and its output directory under
// workdir/runs, but does not create the directory — callers do that once
// they know they have output to write.
func (m *Manager) NewRun(deviceCount, linkCount int) RunRecord {
	id := uuid.NewString()
	return RunRecord{
		ID:          id,
		StartedAt:   time.Now(),
		DeviceCount: deviceCount,
		LinkCount:   linkCount,
		OutputDir:   filepath.Join(m.path, "runs", id),
	}
}

// SaveRun writes rec's metadata plus the named artifacts into rec's
// output directory, each artifact written verbatim as a text file named
// by its map key.
func (m *Manager) SaveRun(rec RunRecord, artifacts map[string]string) error {
	if err := ensureDir(rec.OutputDir); err != nil {
		return err
	}
	meta, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(rec.OutputDir, "run.yaml"), meta, 0o600); err != nil {
		return err
	}
	for name, content := range artifacts {
		fp := filepath.Join(rec.OutputDir, name)
		if err := os.WriteFile(fp, []byte(content), 0o644); err != nil {
			return err
		}
	}
	m.log.Info("run saved", "id", rec.ID, "dir", rec.OutputDir)
	return nil
}

// ListRuns returns every run id found under workdir/runs, sorted by
// directory name (os.ReadDir order). Run ids are random UUIDs, so this
// is not creation order.
func (m *Manager) ListRuns() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.path, "runs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

func ensureDir(p string) error {
	return os.MkdirAll(p, 0o755)
}

func userConfigPath() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".config", "topogen", "workdir.yaml")
}

func resolveInitialPath(cfg string) string {
	if env := strings.TrimSpace(os.Getenv("TOPOGEN_WORKDIR")); env != "" {
		abs, _ := filepath.Abs(env)
		return abs
	}
	if b, err := os.ReadFile(cfg); err == nil {
		var m map[string]string
		if yaml.Unmarshal(b, &m) == nil {
			if w := strings.TrimSpace(m["workdir"]); w != "" {
				abs, _ := filepath.Abs(w)
				return abs
			}
		}
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "topogen", "workspace")
}
