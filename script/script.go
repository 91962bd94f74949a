// Package script defines render jobs: the scripted content of a single
// map-fact video plus optional timing overrides. Jobs arrive as JSON
// (HTTP API, Kafka) or as named built-in presets (CLI).
package script

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"geofacts/camera"
)

// Captions holds the per-phase caption text shown at the bottom of the
// frame. Scan and Lock are fmt.Sprintf formats receiving the country name.
type Captions struct {
	Intro string `json:"intro"`
	Scan  string `json:"scan"`
	Lock  string `json:"lock"`
	Outro string `json:"outro"`
	Final string `json:"final"`
}

// ToCamera converts to the planner's caption set.
func (c Captions) ToCamera() camera.Captions {
	return camera.Captions{
		Intro: c.Intro,
		Scan:  c.Scan,
		Lock:  c.Lock,
		Outro: c.Outro,
		Final: c.Final,
	}
}

// Job describes one video to render. Zero-valued timing fields fall
// back to the camera package defaults.
type Job struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Countries []string `json:"countries"`
	Captions  Captions `json:"captions"`

	ZoomFrames  int `json:"zoom_frames,omitempty"`
	HoldFrames  int `json:"hold_frames,omitempty"`
	IntroFrames int `json:"intro_frames,omitempty"`
	FinalFrames int `json:"final_frames,omitempty"`

	// Shake is the hold-phase jitter amplitude in map units. nil means
	// the default; an explicit 0 disables the shake.
	Shake *float64 `json:"shake,omitempty"`

	// Seed makes the shake reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed,omitempty"`
}

// ShakeIntensity resolves the optional Shake override.
func (j *Job) ShakeIntensity() float64 {
	if j.Shake == nil {
		return camera.DefaultShake
	}
	return *j.Shake
}

// ApplyDefaults fills the ID and any caption left empty.
func (j *Job) ApplyDefaults() {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Captions.Intro == "" {
		j.Captions.Intro = "Initiating Scan..."
	}
	if j.Captions.Scan == "" {
		j.Captions.Scan = "Scanning: %s"
	}
	if j.Captions.Lock == "" {
		j.Captions.Lock = "TARGET LOCKED: %s"
	}
	if j.Captions.Outro == "" {
		j.Captions.Outro = "Global Analysis Complete"
	}
	if j.Captions.Final == "" {
		j.Captions.Final = "The Truth is Out There..."
	}
}

// Validate checks the fields a render cannot proceed without.
func (j *Job) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("job title is required")
	}
	if len(j.Countries) == 0 {
		return fmt.Errorf("job needs at least one country")
	}
	for i, c := range j.Countries {
		if c == "" {
			return fmt.Errorf("country %d is empty", i)
		}
	}
	if j.Shake != nil && *j.Shake < 0 {
		return fmt.Errorf("shake intensity must be >= 0, got %v", *j.Shake)
	}
	return nil
}

// LoadFile reads a job from a JSON file (CLI batch input).
func LoadFile(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	return j, nil
}
