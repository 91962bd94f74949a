package api

import (
	"github.com/gin-gonic/gin"

	"geofacts/processor"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(proc *processor.VideoProcessor) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterRenderRoutes(r, proc)
	RegisterHealthRoutes(r)
	return r
}
