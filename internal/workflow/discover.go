package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"lingopipe/internal/dialogue"
)

// ErrLocked indicates another batch run holds the workspace lock.
var ErrLocked = errors.New("workflow: workspace is locked by another run")

// DiscoverAudio returns the dialogue audio files under dir, one per
// dialogue ID, sorted by path.
func DiscoverAudio(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read audio directory: %w", err)
	}

	seen := map[string]struct{}{}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".mp3" {
			continue
		}
		id, ok := dialogue.ExtractID(name)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// DiscoverDialogues returns the dialogue IDs with a canonical document
// under dir, skipping the derivative companions, sorted by ID.
func DiscoverDialogues(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dialogue directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := dialogue.CanonicalID(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ProcessDirectory runs ProcessAudio over every discovered audio file in
// the configured audio directory, holding the workspace lock for the whole
// batch. One file's failure does not stop the rest; the errors are joined
// and returned alongside the successful results.
func (p *Processor) ProcessDirectory(ctx context.Context, opts ProcessOptions) ([]*Result, error) {
	if err := os.MkdirAll(p.cfg.Paths.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.WorkDir, "lingopipe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	paths, err := DiscoverAudio(p.cfg.Paths.AudioDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		p.logger.Info("no dialogue audio found", "dir", p.cfg.Paths.AudioDir)
		return nil, nil
	}

	var results []*Result
	var failures []error
	for _, path := range paths {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}
		result, err := p.ProcessAudio(ctx, path, opts)
		if err != nil {
			p.logger.Error("audio processing failed", "path", path, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(failures...)
}
