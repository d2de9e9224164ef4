package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"
	"go.uber.org/zap"

	"rainbow-disk/pkg/storage"
	"rainbow-disk/pkg/utils"
	"rainbow-disk/pkg/webdav"
)

type Options struct {
	Port       int
	WebdavPort int
	// Statics is an optional directory of UI files served at /.
	Statics string
	// CorsOrigins empty allows any origin.
	CorsOrigins []string
}

type Server struct {
	ctx    context.Context
	stg    *storage.Storage
	dav    *webdav.Webdav
	jobs   *jobs
	engine *gin.Engine
	opts   Options

	logger *zap.SugaredLogger
}

// New builds the HTTP API over stg. Renders started through the API stop
// when ctx is done.
func New(ctx context.Context, stg *storage.Storage, opts Options) (*Server, error) {
	s := &Server{
		ctx:    ctx,
		stg:    stg,
		dav:    webdav.New(ctx, opts.WebdavPort, stg.Dir()),
		jobs:   newJobs(),
		opts:   opts,
		logger: utils.GetLogger(),
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(utils.Cors(opts.CorsOrigins...))
	if opts.Statics != "" {
		if err := registerStaticsDir(r, opts.Statics, "/"); err != nil {
			return nil, err
		}
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("page not found"))
	})

	apiRouter := r.Group("/api")

	deviceRouter := apiRouter.Group("/device")
	deviceRouter.GET("/status", s.deviceStatus)
	deviceRouter.PUT("/webdav", s.ctlWebdav)

	projectRouter := apiRouter.Group("/project")
	projectRouter.GET("/:name", s.getProject)
	projectRouter.GET("", s.listProject)
	projectRouter.POST("", s.createProject)
	projectRouter.PUT("", s.updateProject)
	projectRouter.DELETE("/:name", s.deleteProject)

	projectRouter.GET("/:name/render", s.renderStatus)
	projectRouter.POST("/:name/render", s.startRender)

	projectRouter.GET("/:name/sources", s.listSources)
	projectRouter.POST("/:name/sources", s.uploadSource)

	projectRouter.GET("/:name/outputs", s.listOutputs)
	projectRouter.GET("/:name/outputs/:file", s.getOutput)
	projectRouter.GET("/:name/outputs/:file/thumbnail", s.getThumbnail)

	s.engine = r

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done or a signal arrives, then waits for
// running renders and stops webdav.
func (s *Server) Run(ctx context.Context) error {
	defer s.jobs.wait()
	defer s.dav.Stop()

	s.logger.Infof("serving %s on :%d", s.stg.Dir(), s.opts.Port)
	return utils.ListenAndServe(ctx, s.engine, s.opts.Port)
}

func registerStaticsDir(group gin.IRoutes, dir, relativeGroup string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("the specified directory %s does not exist", dir)
	}
	dir = filepath.ToSlash(filepath.Clean(dir))
	group.StaticFile(relativeGroup, filepath.Join(dir, "index.html"))
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			relativePath := path.Join(relativeGroup, strings.Replace(filepath.ToSlash(p), dir, "", 1))
			group.StaticFile(relativePath, p)
		}
		return nil
	})
}

func internalErr(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, jsend.SimpleErr(err.Error()))
}
