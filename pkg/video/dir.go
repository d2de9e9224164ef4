package video

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"rainbow-disk/pkg/utils"
)

// DirSource reads the images of a directory as frames, ordered by the
// number embedded in their names (frame-2.jpg before frame-10.jpg).
type DirSource struct {
	dir   string
	files []string
	pos   int
}

func OpenDir(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !utils.IsImageFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.SliceStable(files, func(i, j int) bool {
		return frameLess(files[i], files[j])
	})

	return &DirSource{dir: dir, files: files}, nil
}

func (d *DirSource) Files() []string {
	return d.files
}

func (d *DirSource) FrameCount() int {
	return len(d.files)
}

func (d *DirSource) Next() (image.Image, error) {
	if d.pos >= len(d.files) {
		return nil, io.EOF
	}
	name := d.files[d.pos]
	d.pos++
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, err
	}
	img, err := utils.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return img, nil
}

func (d *DirSource) Skip(n int) (int, error) {
	if left := len(d.files) - d.pos; n > left {
		d.pos = len(d.files)
		return left, io.EOF
	}
	d.pos += n
	return n, nil
}

func (d *DirSource) Close() error {
	return nil
}

func frameLess(a, b string) bool {
	na, pa, oka := frameNumber(a)
	nb, pb, okb := frameNumber(b)
	if oka && okb && pa == pb && na != nb {
		return na < nb
	}
	return a < b
}

// frameNumber splits "name-12.jpg" into 12 and "name-".
func frameNumber(name string) (int, string, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return 0, base, false
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return 0, base, false
	}
	return n, base[:i], true
}
