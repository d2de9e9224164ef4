package webdav

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/webdav"

	"rainbow-disk/pkg/utils"
)

// Webdav exports the storage dir on its own port and can be switched on
// and off at runtime.
type Webdav struct {
	lock   sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	port   int
	dir    string
	addr   string
}

func New(ctx context.Context, port int, dir string) *Webdav {
	return &Webdav{
		ctx:  ctx,
		port: port,
		dir:  dir,
	}
}

// Start reports false when the server is already running.
func (w *Webdav) Start() (bool, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.cancel != nil {
		return false, nil
	}
	newCtx, cancel := context.WithCancel(w.ctx)
	addr, err := Serve(newCtx, w.port, w.dir)
	if err != nil {
		cancel()
		return false, err
	}
	w.cancel = cancel
	w.addr = addr

	return true, nil
}

// Stop reports false when the server was not running.
func (w *Webdav) Stop() bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.cancel == nil {
		return false
	}
	w.cancel()
	w.cancel = nil
	w.addr = ""

	return true
}

func (w *Webdav) Running() bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.cancel != nil
}

// Addr is the listen address while running.
func (w *Webdav) Addr() string {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.addr
}

func Handler(dir string, logger *zap.SugaredLogger) http.Handler {
	return &webdav.Handler{
		FileSystem: webdav.Dir(dir),
		LockSystem: webdav.NewMemLS(),
		Logger: func(r *http.Request, err error) {
			if err != nil {
				logger.Errorf("WEBDAV [%s]: %s, err: %s", r.Method, r.URL, err)
			}
		},
	}
}

// Serve listens on port (0 picks a free one) until ctx is done and
// returns the bound address.
func Serve(ctx context.Context, port int, dir string) (string, error) {
	logger := utils.GetLogger()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return "", err
	}
	svr := &http.Server{
		Handler:           Handler(dir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := svr.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("webdav server err: %s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srcCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(srcCtx); err != nil {
			logger.Errorf("shutdown webdav server err: %s", err)
		}
	}()
	logger.Infof("webdav serving %s on %s", dir, ln.Addr())

	return ln.Addr().String(), nil
}
