// Package production provides production integrations for a running
// Interpreter: snapshot persistence, transition event publishing, and DOT
// visualization, generalized from the teacher's package of the same name
// (internal/production/*.go) onto internal/core and internal/elements.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"statechartx/internal/core"
)

// JSONPersister is a file-based persister that keeps one core.Snapshot per
// machine as a JSON file, generalized from the teacher's JSONPersister
// (internal/production/persister.go) from primitives.MachineConfig-based
// snapshots onto core.Snapshot.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, machineID string, snapshot core.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	fn := filepath.Join(p.dir, machineID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (core.Snapshot, error) {
	fn := filepath.Join(p.dir, machineID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Snapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return core.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var snapshot core.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization for
// core.Snapshot, generalized the same way as JSONPersister.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, machineID string, snapshot core.Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	fn := filepath.Join(p.dir, machineID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (core.Snapshot, error) {
	fn := filepath.Join(p.dir, machineID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Snapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return core.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var snapshot core.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return snapshot, nil
}

var latestKey = []byte("__latest__")

// BoltRegistry implements core.Registry over a go.etcd.io/bbolt database,
// keeping every registered version of every machine's snapshot rather than
// a single slot, per spec.md §10's embedded-storage row (the pack's bbolt
// dependency had no home in the teacher, which only ever kept one snapshot
// per machine).
type BoltRegistry struct {
	db *bolt.DB
}

// NewBoltRegistry opens (creating if necessary) a bbolt database at path.
func NewBoltRegistry(path string) (*BoltRegistry, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	return &BoltRegistry{db: db}, nil
}

func (r *BoltRegistry) Close() error {
	return r.db.Close()
}

func (r *BoltRegistry) Register(ctx context.Context, machineID string, snapshot core.Snapshot) error {
	return r.registerVersion(machineID, snapshot, time.Now().UTC().Format(time.RFC3339Nano))
}

func (r *BoltRegistry) registerVersion(machineID string, snapshot core.Snapshot, version string) error {
	sv := core.SnapshotVersion{Snapshot: snapshot, Version: version, Timestamp: time.Now().UTC()}
	data, err := json.Marshal(sv)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(machineID))
		if err != nil {
			return err
		}
		if existing := bucket.Get([]byte(version)); existing != nil {
			return core.ErrExists
		}
		if err := bucket.Put([]byte(version), data); err != nil {
			return err
		}
		return bucket.Put(latestKey, []byte(version))
	})
}

func (r *BoltRegistry) Latest(ctx context.Context, machineID string) (core.Snapshot, error) {
	var sv core.SnapshotVersion
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(machineID))
		if bucket == nil {
			return core.ErrNotFound
		}
		version := bucket.Get(latestKey)
		if version == nil {
			return core.ErrNotFound
		}
		data := bucket.Get(version)
		if data == nil {
			return core.ErrNotFound
		}
		return json.Unmarshal(data, &sv)
	})
	return sv.Snapshot, err
}

func (r *BoltRegistry) Version(ctx context.Context, machineID, version string) (core.Snapshot, error) {
	var sv core.SnapshotVersion
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(machineID))
		if bucket == nil {
			return core.ErrNotFound
		}
		data := bucket.Get([]byte(version))
		if data == nil {
			return core.ErrNotFound
		}
		return json.Unmarshal(data, &sv)
	})
	return sv.Snapshot, err
}

func (r *BoltRegistry) ListVersions(ctx context.Context, machineID string) ([]string, error) {
	var versions []string
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(machineID))
		if bucket == nil {
			return core.ErrNotFound
		}
		return bucket.ForEach(func(k, _ []byte) error {
			if string(k) == string(latestKey) {
				return nil
			}
			versions = append(versions, string(k))
			return nil
		})
	})
	sort.Strings(versions)
	return versions, err
}

func (r *BoltRegistry) ListMachines(ctx context.Context) ([]string, error) {
	var machines []string
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			machines = append(machines, string(name))
			return nil
		})
	})
	sort.Strings(machines)
	return machines, err
}
