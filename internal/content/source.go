package content

import (
	"fmt"
	"sync/atomic"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/errors"
	"github.com/Iron-Ham/debatemebro/internal/logging"
)

// FileSource serves plans from a file on disk. Reload swaps in a freshly
// parsed library; sessions already running keep the plan they started with.
// The phase catalog is fixed at load time: controllers are built over it, so
// a reload that changes it is rejected.
type FileSource struct {
	path   string
	lib    atomic.Pointer[Library]
	logger *logging.Logger
}

// NewFileSource loads path and returns a source backed by it.
func NewFileSource(path string, logger *logging.Logger) (*FileSource, error) {
	lib, err := Load(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	s := &FileSource{path: path, logger: logger.With("plan_file", path)}
	s.lib.Store(lib)
	return s, nil
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Library returns the currently loaded library.
func (s *FileSource) Library() *Library {
	return s.lib.Load()
}

// Catalog returns the catalog of the currently loaded library.
func (s *FileSource) Catalog() *debate.Catalog {
	return s.lib.Load().Catalog()
}

// Plan implements debate.ContentSource.
func (s *FileSource) Plan(topic string) (*debate.Plan, error) {
	return s.lib.Load().Plan(topic)
}

// Reload re-reads the file. On error the previously loaded library stays in
// place. A file whose catalog differs from the loaded one fails with
// errors.ErrCatalogChanged.
func (s *FileSource) Reload() error {
	lib, err := Load(s.path)
	if err != nil {
		s.logger.Warn("plan reload failed, keeping previous plans", "error", err)
		return err
	}
	if !lib.Catalog().Equal(s.Catalog()) {
		s.logger.Warn("plan reload changes the phase catalog, keeping previous plans; restart to apply it")
		return fmt.Errorf("%w: %s", errors.ErrCatalogChanged, s.path)
	}
	s.lib.Store(lib)
	s.logger.Info("plans reloaded", "topics", len(lib.plans))
	return nil
}
