// Package jsonfile persists the address registry as a single JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

// Registry implements repository.AddressRegistry over a JSON file. Writes from one
// process are serialized; concurrent writers in other processes are not coordinated.
type Registry struct {
	mu     sync.Mutex
	path   string
	chain  string
	logger logger.AppLogger
	onSave func()
}

// Compile-time check to ensure Registry implements repository.AddressRegistry
var _ repository.AddressRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithSaveHook registers fn to run after every successful write.
func WithSaveHook(fn func()) Option {
	return func(r *Registry) {
		r.onSave = fn
	}
}

// NewRegistry creates a registry stored at path, classifying addresses of chain.
func NewRegistry(path, chain string, appLogger logger.AppLogger, opts ...Option) *Registry {
	if chain == "" {
		chain = domain.DefaultChain
	}
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	r := &Registry{
		path:   path,
		chain:  chain,
		logger: appLogger.With(logger.KeyComponent, "registry", "path", path),
		onSave: func() {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and parses the whole document.
func (r *Registry) Load(ctx context.Context) (domain.RegistrySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Save overwrites the whole document.
func (r *Registry) Save(ctx context.Context, snapshot domain.RegistrySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// Classified returns the addresses of category on the configured chain.
func (r *Registry) Classified(ctx context.Context, category domain.Category) ([]domain.Address, error) {
	snapshot, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Classified(r.chain, category)
}

// RecordPotentialHacker appends address to the potential_hacker set with a full
// read-modify-write under the writer lock.
func (r *Registry) RecordPotentialHacker(ctx context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := r.save(ctx, snapshot.WithPotentialHacker(r.chain, address)); err != nil {
		return err
	}
	r.logger.Debug("Potential hacker appended", "chain", r.chain, "address", address.String())
	return nil
}

func (r *Registry) load(ctx context.Context) (domain.RegistrySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: registry file %s does not exist", domain.ErrStorage, r.path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrStorage, r.path, err)
	}

	var snapshot domain.RegistrySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: registry %s: %v", domain.ErrParse, r.path, err)
	}
	if snapshot == nil {
		snapshot = domain.RegistrySnapshot{}
	}
	return snapshot, nil
}

// save writes to a temp file in the target directory and renames it over the document.
func (r *Registry) save(ctx context.Context, snapshot domain.RegistrySnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(withEmptySets(snapshot), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode registry: %v", domain.ErrStorage, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if errRemove := os.Remove(tmpName); errRemove != nil && !errors.Is(errRemove, fs.ErrNotExist) {
			r.logger.Warn("Failed to remove temp file", "file", tmpName, logger.KeyError, errRemove)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrStorage, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: failed to sync %s: %v", domain.ErrStorage, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: failed to close %s: %v", domain.ErrStorage, tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		cleanup()
		return fmt.Errorf("%w: failed to replace %s: %v", domain.ErrStorage, r.path, err)
	}

	r.onSave()
	return nil
}

// withEmptySets keeps every category key as an array in the document.
func withEmptySets(s domain.RegistrySnapshot) domain.RegistrySnapshot {
	out := make(domain.RegistrySnapshot, len(s))
	for chain, sets := range s {
		out[chain] = domain.ChainAddresses{
			Hacker:          orEmpty(sets.Hacker),
			Protocol:        orEmpty(sets.Protocol),
			MixingService:   orEmpty(sets.MixingService),
			PotentialHacker: orEmpty(sets.PotentialHacker),
		}
	}
	return out
}

func orEmpty(entries []string) []string {
	if entries == nil {
		return []string{}
	}
	return entries
}
