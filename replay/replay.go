// Package replay runs recorded movement traces through a controller, for
// regression checks of the collision engine.
package replay

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/akmonengine/glide"
	"github.com/akmonengine/glide/config"
	"github.com/akmonengine/glide/scene"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Step is one row of a trace: the input of one tick
type Step struct {
	Tick int     `csv:"tick"`
	DX   float64 `csv:"dx"` // wished horizontal velocity
	DZ   float64 `csv:"dz"`
	Jump bool    `csv:"jump"`
}

// Result is the agent state after one tick
type Result struct {
	Tick     int     `csv:"tick"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	Grounded bool    `csv:"grounded"`
	Contacts int     `csv:"contacts"`
}

// Summary aggregates a replay
type Summary struct {
	Ticks         int
	MeanTravel    float64 // per-tick distance
	MaxTravel     float64
	GroundedRatio float64
	Digest        uint64
}

// ReadSteps decodes a CSV trace
func ReadSteps(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := gocsv.Unmarshal(r, &steps); err != nil {
		return nil, fmt.Errorf("decoding trace: %w", err)
	}
	return steps, nil
}

// WriteResults encodes results as CSV, header included
func WriteResults(w io.Writer, results []Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// Setup builds a world populated with the scene and a controller at its spawn
func Setup(cfg *config.Config, sc *scene.Scene, logger *zap.Logger) (*glide.Controller, error) {
	world, err := glide.NewWorld(cfg.Engine, cfg.Agent, logger)
	if err != nil {
		return nil, err
	}
	if err := sc.Populate(world); err != nil {
		return nil, err
	}
	return glide.NewController(world, sc.Spawn, cfg.Controller), nil
}

// Run feeds the steps to the controller, dt seconds each
func Run(ctrl *glide.Controller, steps []Step, dt float64) []Result {
	contacts := 0
	countContact := func(glide.Event) { contacts++ }
	ctrl.Events.Subscribe(glide.CONTACT_ENTER, countContact)
	ctrl.Events.Subscribe(glide.CONTACT_STAY, countContact)

	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		contacts = 0
		ctrl.Update(dt, mgl64.Vec3{step.DX, 0, step.DZ}, step.Jump)

		results = append(results, Result{
			Tick:     step.Tick,
			X:        ctrl.Position.X(),
			Y:        ctrl.Position.Y(),
			Z:        ctrl.Position.Z(),
			Grounded: ctrl.Grounded(),
			Contacts: contacts,
		})
	}

	return results
}

// Summarize computes travel statistics from the spawn point onwards
func Summarize(spawn mgl64.Vec3, results []Result) Summary {
	summary := Summary{Ticks: len(results), Digest: Digest(results)}
	if len(results) == 0 {
		return summary
	}

	travel := make([]float64, len(results))
	grounded := make([]float64, len(results))
	previous := spawn
	for i, r := range results {
		position := mgl64.Vec3{r.X, r.Y, r.Z}
		travel[i] = position.Sub(previous).Len()
		previous = position
		if r.Grounded {
			grounded[i] = 1
		}
	}

	summary.MeanTravel = stat.Mean(travel, nil)
	summary.MaxTravel = floats.Max(travel)
	summary.GroundedRatio = stat.Mean(grounded, nil)
	return summary
}

// Digest fingerprints the positions and grounded flags of a replay.
// Two runs of the same trace on the same scene and configuration match bit for bit.
func Digest(results []Result) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 25)
	for _, r := range results {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Z))
		if r.Grounded {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
