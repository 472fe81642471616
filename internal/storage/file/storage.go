package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"teamTasks/internal/logger"
	"teamTasks/internal/storage"

	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const AppName = "teamTasks"

// Storage хранит каждое значение в отдельном файле <dir>/<key>.json
type Storage struct {
	fs  afero.Fs
	dir string
	mtx sync.Mutex
}

// DefaultDir - локальный каталог настроек пользователя для приложения
func DefaultDir() string {
	return configdir.LocalConfig(AppName)
}

func NewOsStorage(dir string) (*Storage, error) {
	return New(afero.NewOsFs(), dir)
}

func New(fs afero.Fs, dir string) (*Storage, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "could not create storage directory '%s'", dir)
	}

	logger.Info("Storage: файловое хранилище готово", zap.String("dir", dir))
	return &Storage{fs: fs, dir: dir}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if !info.IsDir() {
		return errors.Errorf("'%s' is not a directory", s.dir)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "could not read key '%s'", key)
	}

	return data, nil
}

// Put пишет во временный файл и переименовывает его поверх старого,
// поэтому прежнее значение остаётся целым при любой ошибке записи
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	tmp, err := afero.TempFile(s.fs, s.dir, key+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "could not create temporary file")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := s.fs.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Storage: не удалось удалить временный файл", zap.String("file", tmp.Name()), zap.Error(err))
		}
	}()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not write temporary file")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not sync temporary file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "could not close temporary file")
	}

	if err := s.fs.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrapf(err, "could not overwrite key '%s'", key)
	}

	committed = true
	return nil
}

func (s *Storage) Close() error {
	return nil
}
