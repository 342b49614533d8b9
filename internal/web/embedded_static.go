package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	assets "github.com/go-while/go-islands/web"
)

// mountDist serves the client bundle under prefix. A StaticDir that exists on
// disk is served as-is; otherwise the bundle embedded in the binary is used.
func (s *WebServer) mountDist(prefix string) error {
	if dir := s.Config.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.log.Info().Str("dir", dir).Str("prefix", prefix).Msg("Serving static files from disk")
			s.Router.Static(prefix, dir)
			return nil
		}
		s.log.Info().Str("dir", dir).Msg("Static dir not found, using embedded bundle")
	}

	handler, err := EmbeddedStaticHandler(prefix)
	if err != nil {
		return err
	}
	s.Router.GET(prefix+"/*filepath", handler)
	s.Router.HEAD(prefix+"/*filepath", handler)
	return nil
}

// ListEmbeddedFiles returns a list of all embedded dist files for debugging
func ListEmbeddedFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(assets.Dist, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// EmbeddedStaticHandler returns a Gin handler for serving the embedded dist files
func EmbeddedStaticHandler(prefix string) (gin.HandlerFunc, error) {
	// Create a sub-filesystem for the static files
	distFS, err := fs.Sub(assets.Dist, "dist")
	if err != nil {
		return nil, fmt.Errorf("embedded dist filesystem: %w", err)
	}

	// Create an HTTP filesystem handler
	fileServer := http.FileServer(http.FS(distFS))

	return func(c *gin.Context) {
		// Strip the URL path prefix to get the file path
		path := strings.TrimPrefix(c.Request.URL.Path, prefix)
		if path == "" || strings.HasSuffix(path, "/") {
			// no directory listings
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		// Update the request URL path for the file server
		c.Request.URL.Path = path

		// Set some cache headers for static content
		c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour

		// Serve the file
		fileServer.ServeHTTP(c.Writer, c.Request)
	}, nil
}
