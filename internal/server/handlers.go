package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status  string `json:"status"`
	Viewers int    `json:"viewers"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboardHTML)
}

// handleStatus is the pull side of the contract: the full snapshot,
// histories included.
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.mon.Snapshot())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Viewers: s.mon.ViewerCount(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

// handleEvents is the push side: attach a viewer, relay its queue as SSE
// frames until the client goes away or the viewer is detached. The first
// frame is always the snapshot the broadcaster queued on attach.
func (s *Server) handleEvents(c *gin.Context) {
	v := s.mon.Attach()
	defer s.mon.Detach(v)

	s.log.Info("Client connected to training monitor")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-v.Events():
			if !ok {
				// Detached server-side, likely shutdown.
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-ctx.Done():
			return false
		}
	})

	if dropped := v.Drops(); dropped > 0 {
		s.log.Debug("viewer %s dropped %d events while connected", v.ID(), dropped)
	}
	s.log.Info("Client disconnected from training monitor")
}
