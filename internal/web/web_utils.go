// Package web provides the HTTP server and web interface for go-islands
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-while/go-islands/internal/config"
	"github.com/go-while/go-islands/internal/metrics"
	assets "github.com/go-while/go-islands/web"
)

const pageLang = "fr"

// templatesFileSystem returns dir on disk when set, the embedded templates otherwise
func templatesFileSystem(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("templates dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("templates dir %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(assets.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// templateFuncs are available to every page template
func templateFuncs() template.FuncMap {
	titler := cases.Title(language.French)
	return template.FuncMap{
		"title": func(s string) string { return titler.String(s) },
	}
}

// GetPort returns the listening port from the config
func (s *WebServer) GetPort() int {
	return s.Config.ListenPort
}

// getBaseTemplateData creates a TemplateData struct with common information
func (s *WebServer) getBaseTemplateData(title string) TemplateData {
	return TemplateData{
		Title:       title,
		Lang:        pageLang,
		CurrentTime: time.Now().Format("2006-01-02 15:04:05"),
		Port:        s.GetPort(),
		AppVersion:  config.AppVersion,
	}
}

// executeTemplate parses base.html with the page template and renders it into a buffer.
// Templates are loaded per request so edits in TemplatesDir show up without a restart.
func (s *WebServer) executeTemplate(templateName string, data any) ([]byte, error) {
	tmpl, err := template.New("base.html").Funcs(templateFuncs()).ParseFS(s.templatesFS, "base.html", templateName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", templateName, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", templateName, err)
	}
	return buf.Bytes(), nil
}

// renderTemplate renders a page; template failures become a 500 error page
func (s *WebServer) renderTemplate(c *gin.Context, page, templateName string, data any) {
	body, err := s.executeTemplate(templateName, data)
	if err != nil {
		metrics.PageRendersTotal.WithLabelValues(page, "error").Inc()
		s.renderError(c, http.StatusInternalServerError, "Template error", err.Error())
		return
	}
	metrics.PageRendersTotal.WithLabelValues(page, "ok").Inc()
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// renderError renders an error page
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, errstring string) {
	errorData := struct {
		TemplateData
		Error      string
		StatusCode int
	}{
		TemplateData: s.getBaseTemplateData("Erreur"),
		Error:        message,
		StatusCode:   statusCode,
	}
	if statusCode >= http.StatusInternalServerError {
		s.log.Error().Int("status", statusCode).Str("detail", errstring).Msg(message)
	} else {
		s.log.Debug().Int("status", statusCode).Str("detail", errstring).Msg(message)
	}

	body, err := s.executeTemplate("error.html", errorData)
	if err != nil {
		s.log.Error().Err(err).Msg("Error rendering error template")
		c.String(statusCode, "Error: %s - %s", message, errstring)
		return
	}
	c.Data(statusCode, "text/html; charset=utf-8", body)
}
