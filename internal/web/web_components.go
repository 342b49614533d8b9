// Package web provides the HTTP server and web interface for go-islands
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-while/go-islands/internal/components"
	"github.com/go-while/go-islands/internal/metrics"
)

// slowComponentStream mounts a Slow component for the lifetime of the
// request and streams its rendered block as server-sent events: one
// "render" event straight away, a second once the delay has elapsed, then
// "done". A client that goes away unmounts the component, which stops its
// timer.
func (s *WebServer) slowComponentStream(c *gin.Context) {
	slow := components.NewSlow(
		components.WithDelay(s.Config.SlowDelay),
		components.WithClock(s.clock),
	)
	log := s.log.With().Str("component", "slow").Str("id", slow.ID.String()).Logger()

	if err := slow.Mount(); err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}
	metrics.SlowStreamsActive.Inc()
	defer metrics.SlowStreamsActive.Dec()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if err := s.sendRender(c, slow); err != nil {
		slow.Unmount()
		log.Error().Err(err).Msg("initial render failed")
		return
	}
	log.Debug().Dur("delay", slow.Delay()).Msg("slow component mounted")

	select {
	case <-slow.Revealed():
		if err := s.sendRender(c, slow); err != nil {
			log.Error().Err(err).Msg("render after reveal failed")
		}
		c.SSEvent("done", slow.ID.String())
		c.Writer.Flush()
		slow.Unmount()
		metrics.SlowOutcomesTotal.WithLabelValues(metrics.OutcomeRevealed).Inc()
		log.Debug().Msg("slow component revealed")

	case <-c.Request.Context().Done():
		// client disconnected while loading
		if slow.Unmount() {
			metrics.SlowOutcomesTotal.WithLabelValues(metrics.OutcomeUnmounted).Inc()
		}
		log.Debug().Msg("slow component unmounted by client")

	case <-s.done:
		if slow.Unmount() {
			metrics.SlowOutcomesTotal.WithLabelValues(metrics.OutcomeUnmounted).Inc()
		}
		c.SSEvent("done", slow.ID.String())
		c.Writer.Flush()
		log.Debug().Msg("slow component unmounted by shutdown")
	}
}

func (s *WebServer) sendRender(c *gin.Context, comp components.Component) error {
	out, err := comp.Render()
	if err != nil {
		return err
	}
	c.SSEvent("render", string(out))
	c.Writer.Flush()
	return nil
}

// helloComponent renders Hello from the JSON object in ?props=
func (s *WebServer) helloComponent(c *gin.Context) {
	raw := c.DefaultQuery("props", "{}")
	props, err := components.DecodeProps(raw)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid props", err.Error())
		return
	}
	hello, err := components.NewHello(props)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}
	out, err := hello.Render()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
