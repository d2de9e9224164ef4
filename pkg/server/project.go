package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"

	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/storage"
	"rainbow-disk/pkg/storage/consts"
	"rainbow-disk/pkg/storage/project"
	"rainbow-disk/pkg/utils"
)

func (s *Server) getProject(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, jsend.Success(p))
}

func (s *Server) listProject(c *gin.Context) {
	projects, err := s.stg.ListProjects()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(projects))
}

func (s *Server) createProject(c *gin.Context) {
	p := ov.Project{Options: ov.Default()}
	if err := c.Bind(&p); err != nil {
		return
	}
	if _, err := render.New(p.Options); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	pj, err := s.stg.NewProject(p)
	if errors.Is(err, storage.ErrProjectExists) {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("project already exists"))
		return
	}
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(pj))
}

func (s *Server) updateProject(c *gin.Context) {
	p := ov.Project{Options: ov.Default()}
	if err := c.Bind(&p); err != nil {
		return
	}
	if _, err := render.New(p.Options); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	pj, err := s.stg.GetProject(p.Name)
	if err != nil {
		internalErr(c, err)
		return
	}
	if pj == nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("project does not exist"))
		return
	}
	pj.Info = p.Info
	pj.Source = p.Source
	pj.Options = p.Options

	if err = s.stg.UpdateProject(pj); err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(pj))
}

func (s *Server) deleteProject(c *gin.Context) {
	name := c.Param("name")

	if err := s.jobs.forget(name); err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}
	err := s.stg.DeleteProject(name)
	if errors.Is(err, storage.ErrProjectNotFound) {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("project does not exist"))
		return
	}
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(fmt.Sprintf("delete project %s success", name)))
}

func (s *Server) renderStatus(c *gin.Context) {
	if _, ok := s.loadProject(c); !ok {
		return
	}

	c.JSON(http.StatusOK, jsend.Success(s.jobs.status(c.Param("name"))))
}

func (s *Server) startRender(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	r, err := render.New(p.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	st, err := s.jobs.start(p.Name, func() error {
		return s.render(r, p)
	})
	if err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, jsend.Success(st))
}

func (s *Server) render(r *render.Renderer, p *project.Project) error {
	start := time.Now()
	s.logger.Infof("render project %s from %s", p.Name, p.SourcePath())

	out, err := r.Open(s.ctx, p.SourcePath())
	if err != nil {
		s.logger.Errorf("render project %s: %s", p.Name, err)
		return err
	}
	quality := p.Options.Quality
	if quality <= 0 {
		quality = ov.DefaultQuality
	}
	if err = out.Save(p.StripPath(), p.DiskPath(), quality); err != nil {
		return err
	}

	p.LastRender = &project.RenderInfo{
		Frames:    out.Result.Frames,
		Filled:    out.Result.Filled,
		Columns:   out.Strip.Width,
		Truncated: out.Result.Truncated,
		DiskSize:  out.Disk.Width,
		Duration:  time.Since(start).Round(time.Millisecond).String(),
		UpdateAt:  time.Now(),
	}
	s.logger.Infof("project %s rendered in %s", p.Name, p.LastRender.Duration)

	return s.stg.UpdateProject(p)
}

func (s *Server) listSources(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	files, err := p.ListSources()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(files))
}

func (s *Server) uploadSource(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}
	f, err := fh.Open()
	if err != nil {
		internalErr(c, err)
		return
	}
	defer f.Close()

	name := filepath.Base(fh.Filename)
	if err = p.SaveSource(name, f); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(name))
}

func (s *Server) listOutputs(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	files, err := p.ListOutputs()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(files))
}

func (s *Server) getOutput(c *gin.Context) {
	file, ok := s.outputFile(c)
	if !ok {
		return
	}

	c.File(file)
}

func (s *Server) getThumbnail(c *gin.Context) {
	file, ok := s.outputFile(c)
	if !ok {
		return
	}
	img, err := utils.DecodeImageFile(file)
	if err != nil {
		internalErr(c, err)
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if err = utils.EncodeJPEG(utils.Thumbnail(img, consts.ThumbnailSide), c.Writer, utils.DefaultJPEGQuality); err != nil {
		s.logger.Errorf("write thumbnail %s: %s", file, err)
	}
}

func (s *Server) outputFile(c *gin.Context) (string, bool) {
	p, ok := s.loadProject(c)
	if !ok {
		return "", false
	}
	file, err := p.OutputPath(c.Param("file"))
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return "", false
	}
	if _, err = os.Stat(file); err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("file not found"))
		return "", false
	}

	return file, true
}

// loadProject writes the error response itself when it returns false.
func (s *Server) loadProject(c *gin.Context) (*project.Project, bool) {
	p, err := s.stg.GetProject(c.Param("name"))
	if err != nil {
		internalErr(c, err)
		return nil, false
	}
	if p == nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("project not found"))
		return nil, false
	}

	return p, true
}
