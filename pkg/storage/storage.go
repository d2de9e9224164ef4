package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/storage/consts"
	"rainbow-disk/pkg/storage/project"
	"rainbow-disk/pkg/storage/util"
)

var (
	ErrProjectExists   = errors.New("storage: project already exists")
	ErrProjectNotFound = errors.New("storage: project does not exist")
)

// Storage keeps the project list in <dir>/info.json and each project's
// files in <dir>/<name>.
type Storage struct {
	lock sync.RWMutex
	dir  string
}

func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir can not be empty")
	}
	s := &Storage{dir: dir}
	if err := util.MkdirAll(dir); err != nil {
		return nil, err
	}
	if err := s.checkInitInfo(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) ListProjects() ([]*project.Project, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.loadProjects()
}

// GetProject returns nil without an error when no project has that name.
func (s *Storage) GetProject(name string) (*project.Project, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	list, err := s.loadProjects()
	if err != nil {
		return nil, err
	}
	_, p := find(list, name)

	return p, nil
}

func (s *Storage) NewProject(p ov.Project) (*project.Project, error) {
	if err := util.CheckName(p.Name); err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	list, err := s.loadProjects()
	if err != nil {
		return nil, err
	}
	if i, _ := find(list, p.Name); i >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, p.Name)
	}
	pj, err := project.New(p.Name, p.Info, p.Source, p.Options, s.dir)
	if err != nil {
		return nil, err
	}
	list = append(list, pj)

	return pj, s.dumpProjects(list)
}

func (s *Storage) UpdateProject(p *project.Project) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	list, err := s.loadProjects()
	if err != nil {
		return err
	}
	i, _ := find(list, p.Name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, p.Name)
	}
	list[i] = p

	return s.dumpProjects(list)
}

func (s *Storage) DeleteProject(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	list, err := s.loadProjects()
	if err != nil {
		return err
	}
	i, p := find(list, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err = p.Clear(); err != nil {
		return err
	}
	list = append(list[:i], list[i+1:]...)

	return s.dumpProjects(list)
}

func (s *Storage) loadProjects() ([]*project.Project, error) {
	data, err := os.ReadFile(s.infoPath())
	if err != nil {
		return nil, err
	}
	var list []*project.Project
	if err = json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshal project info err: %w", err)
	}
	for _, p := range list {
		p.SetRootDir(s.dir)
	}

	return list, nil
}

func (s *Storage) dumpProjects(list []*project.Project) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.infoPath() + ".tmp"
	if err = os.WriteFile(tmp, data, consts.DefaultFilePerm); err != nil {
		return err
	}

	return os.Rename(tmp, s.infoPath())
}

func (s *Storage) infoPath() string {
	return filepath.Join(s.dir, consts.DefaultInfoFile)
}

func (s *Storage) checkInitInfo() error {
	_, err := os.Stat(s.infoPath())
	if os.IsNotExist(err) {
		return s.dumpProjects(make([]*project.Project, 0))
	}

	return err
}

func find(list []*project.Project, name string) (int, *project.Project) {
	for i, p := range list {
		if p.Name == name {
			return i, p
		}
	}
	return -1, nil
}
