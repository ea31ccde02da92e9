package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-station/internal/infra/config"
)

// staticFallback serves the dashboard bundle for any unmatched path. Paths without a
// matching file get the index page so client side routes resolve; unknown /api paths
// get a JSON 404 instead.
func staticFallback(cfg config.StaticConfig) gin.HandlerFunc {
	root := filepath.Clean(cfg.Dir)
	index := filepath.Join(root, cfg.Index)

	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "no such endpoint", nil))
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil))
			return
		}

		// path.Clean on a rooted path removes any ".." segments.
		candidate := filepath.Join(root, filepath.FromSlash(path.Clean("/"+reqPath)))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(index)
	}
}
