package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"

	"rainbow-disk/pkg/utils/ps"
)

const (
	webDavStart    = "start"
	webDavShutdown = "shutdown"
)

type DeviceStatus struct {
	CPU    ps.CPU    `json:"cpu"`
	Memory ps.Memory `json:"memory"`
	Disk   ps.Disk   `json:"disk"`
	Webdav string    `json:"webdav,omitempty"`
}

func (s *Server) deviceStatus(c *gin.Context) {
	cpu, err := ps.CPUStatus()
	if err != nil {
		internalErr(c, err)
		return
	}
	memory, err := ps.MemoryStatus()
	if err != nil {
		internalErr(c, err)
		return
	}
	disk, err := ps.DiskUsage(s.stg.Dir())
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(DeviceStatus{
		CPU:    cpu,
		Memory: memory,
		Disk:   disk,
		Webdav: s.dav.Addr(),
	}))
}

func (s *Server) ctlWebdav(c *gin.Context) {
	op := c.Query("op")
	switch op {
	case webDavStart:
		started, err := s.dav.Start()
		if err != nil {
			internalErr(c, err)
			return
		}
		if !started {
			c.JSON(http.StatusOK, jsend.Success("the webdav service is already enabled"))
			return
		}
		c.JSON(http.StatusOK, jsend.Success(s.dav.Addr()))
	case webDavShutdown:
		if !s.dav.Stop() {
			c.JSON(http.StatusOK, jsend.SimpleErr("the webdav service has been shut down"))
			return
		}
		c.JSON(http.StatusOK, jsend.Success(nil))
	default:
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("unknown operation"))
	}
}
