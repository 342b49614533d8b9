// Package web provides the HTTP server and web interface for go-islands
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-while/go-islands/internal/components"
)

// homePage renders "/" with the display name, the server-side Hello and the
// initial state of the slow component. The props blob goes into data-props
// so the client bundle can mount Hello with the same values.
func (s *WebServer) homePage(c *gin.Context) {
	props := components.Props{"name": s.Config.DisplayName}

	encoded, err := components.EncodeProps(props)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Props error", err.Error())
		return
	}
	hello, err := components.NewHello(props)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}
	helloHTML, err := hello.Render()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}
	// not mounted: the stream endpoint owns the live instance
	slowHTML, err := components.NewSlow(components.WithDelay(s.Config.SlowDelay)).Render()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Component error", err.Error())
		return
	}

	data := HomePageData{
		TemplateData: s.getBaseTemplateData("Accueil"),
		Name:         s.Config.DisplayName,
		RootID:       components.RootID,
		Props:        encoded,
		Hello:        helloHTML,
		Slow:         slowHTML,
	}
	s.renderTemplate(c, "home", "home.html", data)
}
