package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/storage/consts"
	"rainbow-disk/pkg/storage/util"
	"rainbow-disk/pkg/utils"
)

type Project struct {
	Name string `json:"name"`
	Info string `json:"info"`
	// Source is a video file or image directory. Relative paths point
	// into the project's sources dir.
	Source  string           `json:"source"`
	Options ov.RenderOptions `json:"options"`

	LastRender *RenderInfo `json:"lastRender,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	rootDir string
}

// RenderInfo summarizes the latest finished render.
type RenderInfo struct {
	Frames    int    `json:"frames"`
	Filled    int    `json:"filled"`
	Columns   int    `json:"columns"`
	Truncated bool   `json:"truncated"`
	DiskSize  int    `json:"diskSize"`
	Duration  string `json:"duration"`

	UpdateAt time.Time `json:"updateAt"`
}

type File struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	HumanSize string    `json:"humanSize"`
	ModTime   time.Time `json:"modTime"`
}

func (p *Project) SetRootDir(dir string) {
	p.rootDir = filepath.Join(dir, p.Name)
}

func (p *Project) RootDir() string {
	return p.rootDir
}

func New(name, info, source string, opts ov.RenderOptions, rootDir string) (*Project, error) {
	p := &Project{
		Name:      name,
		Info:      info,
		Source:    source,
		Options:   opts,
		CreatedAt: time.Now(),
	}
	p.SetRootDir(rootDir)
	err := util.MkdirAll(
		p.sourceDirPath(),
		p.outputDirPath(),
	)

	return p, err
}

// SourcePath resolves Source against the sources dir.
func (p *Project) SourcePath() string {
	if p.Source == "" || filepath.IsAbs(p.Source) {
		return p.Source
	}
	return filepath.Join(p.sourceDirPath(), p.Source)
}

// SaveSource stores an uploaded video or image under the sources dir.
func (p *Project) SaveSource(name string, src io.Reader) error {
	dst, err := util.Join(p.sourceDirPath(), name)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, consts.DefaultFilePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (p *Project) ListSources() ([]File, error) {
	return listFiles(p.sourceDirPath(), func(string) bool { return true })
}

// ListOutputs lists the rendered images, newest first.
func (p *Project) ListOutputs() ([]File, error) {
	return listFiles(p.outputDirPath(), utils.IsImageFile)
}

func (p *Project) OutputPath(name string) (string, error) {
	return util.Join(p.outputDirPath(), name)
}

func (p *Project) StripPath() string {
	return filepath.Join(p.outputDirPath(), consts.DefaultStripFile)
}

func (p *Project) DiskPath() string {
	return filepath.Join(p.outputDirPath(), consts.DefaultDiskFile)
}

func (p *Project) Clear() error {
	return os.RemoveAll(p.rootDir)
}

func (p *Project) sourceDirPath() string {
	return filepath.Join(p.rootDir, consts.DefaultSourcesDir)
}

func (p *Project) outputDirPath() string {
	return filepath.Join(p.rootDir, consts.DefaultOutputsDir)
}

func listFiles(dir string, keep func(string) bool) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	res := make([]File, 0, len(entries))
	for _, e := range entries {
		if !keep(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		res = append(res, File{
			Name:      e.Name(),
			Size:      info.Size(),
			HumanSize: humanize.IBytes(uint64(info.Size())),
			ModTime:   info.ModTime(),
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].ModTime.After(res[j].ModTime)
	})

	return res, nil
}
