package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MaxAutoCheckpoints is how many automatic checkpoints are kept.
const MaxAutoCheckpoints = 5

// Common errors.
var (
	ErrCheckpointUnsupported = errors.New("checkpoints need a database file")
	ErrCheckpointExists      = errors.New("checkpoint already exists")
)

// CheckpointInfo describes one saved copy of the database.
type CheckpointInfo struct {
	CreatedAt time.Time
	ID        string
	Path      string
	FileSize  int64
}

// CheckpointManager copies the database file aside before destructive
// operations such as an import that replaces whole collections.
type CheckpointManager struct {
	store          *SQLiteStore
	now            func() time.Time
	checkpointsDir string
}

// NewCheckpointManager keeps checkpoints in a "checkpoints" directory next to
// the store's database file.
func NewCheckpointManager(store *SQLiteStore) (*CheckpointManager, error) {
	if store.Path() == MemoryPath {
		return nil, ErrCheckpointUnsupported
	}

	dbPath, err := filepath.Abs(store.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	checkpointsDir := filepath.Join(filepath.Dir(dbPath), "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		store:          store,
		checkpointsDir: checkpointsDir,
		now:            time.Now,
	}, nil
}

// Dir returns where checkpoint files are written.
func (cm *CheckpointManager) Dir() string {
	return cm.checkpointsDir
}

// Create writes a consistent copy of the database under tag.
func (cm *CheckpointManager) Create(ctx context.Context, tag string) (CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return CheckpointInfo{}, err
	}
	if tag == "" {
		tag = "checkpoint-" + cm.now().Format("20060102-150405")
	}
	if strings.ContainsAny(tag, `/\'";`) || strings.Contains(tag, "..") {
		return CheckpointInfo{}, fmt.Errorf("invalid checkpoint tag %q", tag)
	}

	path := filepath.Join(cm.checkpointsDir, tag+".db")
	if _, err := os.Stat(path); err == nil {
		return CheckpointInfo{}, ErrCheckpointExists
	}
	if strings.ContainsAny(path, `'";`) {
		return CheckpointInfo{}, fmt.Errorf("invalid checkpoint path %q", path)
	}

	// VACUUM INTO writes a consistent copy, WAL contents included.
	// #nosec G201 - path is checked above for quote characters
	if _, err := cm.store.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", path)); err != nil {
		return CheckpointInfo{}, fmt.Errorf("failed to write checkpoint: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return CheckpointInfo{}, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	slog.Debug("Created checkpoint", "id", tag, "path", path, "size", info.Size())
	return CheckpointInfo{
		ID:        tag,
		Path:      path,
		CreatedAt: info.ModTime(),
		FileSize:  info.Size(),
	}, nil
}

// List returns every checkpoint, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	var checkpoints []CheckpointInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		checkpoints = append(checkpoints, CheckpointInfo{
			ID:        strings.TrimSuffix(entry.Name(), ".db"),
			Path:      filepath.Join(cm.checkpointsDir, entry.Name()),
			CreatedAt: info.ModTime(),
			FileSize:  info.Size(),
		})
	}

	sort.SliceStable(checkpoints, func(i, j int) bool {
		if !checkpoints[i].CreatedAt.Equal(checkpoints[j].CreatedAt) {
			return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
		}
		return checkpoints[i].ID > checkpoints[j].ID
	})
	return checkpoints, nil
}

// AutoCheckpoint creates a checkpoint named after the operation about to run
// and prunes automatic checkpoints beyond MaxAutoCheckpoints.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, operation string) (CheckpointInfo, error) {
	base := fmt.Sprintf("auto-%s-%s", operation, cm.now().Format("20060102-150405"))

	tag := base
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(cm.checkpointsDir, tag+".db")); errors.Is(err, os.ErrNotExist) {
			break
		}
		tag = fmt.Sprintf("%s-%d", base, n)
	}

	info, err := cm.Create(ctx, tag)
	if err != nil {
		return CheckpointInfo{}, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		// Non-fatal: log but continue
		slog.Warn("Failed to clean up old auto-checkpoints", "error", err)
	}
	return info, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !strings.HasPrefix(cp.ID, "auto-") {
			continue
		}
		autoCount++
		if autoCount <= MaxAutoCheckpoints {
			continue
		}
		if err := os.Remove(cp.Path); err != nil {
			slog.Debug("Failed to delete old auto-checkpoint", "error", err, "checkpoint", cp.ID)
		}
	}
	return nil
}
