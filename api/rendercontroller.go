package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"geofacts/processor"
	"geofacts/script"
)

// RenderResponse is returned by the render endpoints.
type RenderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterRenderRoutes wires the render endpoints onto the engine.
func RegisterRenderRoutes(r *gin.Engine, proc *processor.VideoProcessor) {
	grp := r.Group("/api")
	grp.POST("/render", handleRender(proc))
	grp.GET("/presets", handlePresets)
}

// handleRender accepts a render job and starts it asynchronously.
// Rendering takes minutes, so the response only acknowledges intake.
func handleRender(proc *processor.VideoProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var job script.Job
		if err := c.ShouldBindJSON(&job); err != nil {
			c.JSON(http.StatusBadRequest, RenderResponse{
				Message: "Invalid JSON payload",
				Error:   err.Error(),
			})
			return
		}

		job.ApplyDefaults()
		if err := job.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, RenderResponse{
				Message: "Invalid render job",
				Error:   err.Error(),
			})
			return
		}

		log.Printf("Received render request: job=%s", job.ID)

		go func() {
			if _, err := proc.ProcessJob(context.Background(), job); err != nil {
				log.Printf("Render failed for job %s: %v", job.ID, err)
			}
		}()

		c.JSON(http.StatusAccepted, RenderResponse{
			Success: true,
			Message: "Render started",
			JobID:   job.ID,
		})
	}
}

// handlePresets lists the built-in video scripts.
func handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": script.PresetNames()})
}
