package gauge

import (
	"image"
	"math"
	"sync"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"gauge-cam/internal/arrow"
	"gauge-cam/internal/log"
	"gauge-cam/pkg/angles"
)

// Session owns one camera stream's pipeline state. Frames are processed
// strictly one at a time; a multi-stream service embeds one Session per
// stream and delivers each stream's latest frame to its own Session.
// Control signals (tare, history reset, pivot nudging) may arrive from
// another goroutine, so all state is guarded.
type Session struct {
	mu    sync.Mutex
	id    uuid.UUID
	cfg   Config
	black *angles.History
	red   *angles.History
	tare  *TareState
}

// NewSession creates a pipeline instance with the given configuration.
func NewSession(cfg Config) *Session {
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = DefaultConfig().HistoryCap
	}
	return &Session{
		id:    uuid.New(),
		cfg:   cfg,
		black: angles.NewHistory(cfg.HistoryCap),
		red:   angles.NewHistory(cfg.HistoryCap),
		tare:  NewTareState(cfg.HistoryCap),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id.String()
}

// Config returns a copy of the current configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// NudgePivot shifts the pivot offset by (dx, dy) pixels. Exposed for live
// alignment adjustment by an operator.
func (s *Session) NudgePivot(dx, dy int) image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.PivotOffset.X += dx
	s.cfg.PivotOffset.Y += dy
	return s.cfg.PivotOffset
}

// ResetHistories discards both pointers' smoothing windows. The next
// measurement is withheld until both pointers are seen again.
func (s *Session) ResetHistories() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.black.Reset()
	s.red.Reset()
}

// ToggleTare flips tare mode, clearing the accumulator on every toggle.
func (s *Session) ToggleTare() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tare.Toggle()
}

// TareBaseline returns the running tare baseline, if any has accumulated.
func (s *Session) TareBaseline() (TareBaseline, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tare.Baseline()
}

// Debug carries one cycle's intermediate artifacts for an external debug
// view. The caller owns the Mats and must call Close.
type Debug struct {
	Oriented gocv.Mat // frame after canonical rotation
	Overlay  gocv.Mat // oriented frame annotated with segments and rays

	BlackSeg  gocv.Mat
	BlackSkel gocv.Mat
	RedSeg    gocv.Mat
	RedSkel   gocv.Mat

	BlackSegments []arrow.Segment
	RedSegments   []arrow.Segment

	BlackIterations int
	RedIterations   int
}

// Close releases all retained images.
func (d *Debug) Close() {
	d.Oriented.Close()
	d.Overlay.Close()
	d.BlackSeg.Close()
	d.BlackSkel.Close()
	d.RedSeg.Close()
	d.RedSkel.Close()
}

// Process runs one measurement cycle over a frame. It returns a nil
// Measurement while either pointer's history is still empty — pending, not
// an error. A frame on which a pointer cannot be found simply leaves that
// pointer's history untouched, so brief occlusions ride on the smoothed
// estimate. The Debug result is non-nil only when KeepDebug is configured.
func (s *Session) Process(frame gocv.Mat) (*Measurement, *Debug) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg

	pivot := cfg.Pivot(frame.Cols(), frame.Rows())
	oriented := orient(frame, pivot, cfg.Rotation)

	rb := arrow.Detect(oriented, pivot, cfg.Black, cfg.KeepDebug)
	rr := arrow.Detect(oriented, pivot, cfg.Red, cfg.KeepDebug)

	if rb.OK {
		s.black.Push(rb.Theta)
	}
	if rr.OK {
		s.red.Push(rr.Theta)
	}

	var m *Measurement
	thetaBlack, okBlack := s.black.Mean()
	thetaRed, okRed := s.red.Mean()
	if okBlack && okRed {
		if s.tare.Active() {
			s.tare.Add(thetaBlack, thetaRed)
			if b, ok := s.tare.Baseline(); ok {
				log.Debug("tare sample",
					"session", s.id.String(),
					"samples", b.Samples,
					"theta_black", b.ThetaBlack,
					"theta_red", b.ThetaRed)
			}
		}
		mm := Calibrate(thetaBlack, thetaRed, cfg)
		m = &mm
	}

	if !cfg.KeepDebug {
		oriented.Close()
		return m, nil
	}

	dbg := &Debug{
		Oriented:        oriented,
		Overlay:         renderOverlay(oriented, pivot, cfg, m, rb.Segments, rr.Segments),
		BlackSeg:        rb.Seg,
		BlackSkel:       rb.Skel,
		RedSeg:          rr.Seg,
		RedSkel:         rr.Skel,
		BlackSegments:   rb.Segments,
		RedSegments:     rr.Segments,
		BlackIterations: rb.Iterations,
		RedIterations:   rr.Iterations,
	}
	return m, dbg
}

// orient rotates the raster into the dial's canonical orientation about
// the pivot.
func orient(frame gocv.Mat, pivot image.Point, rotation float64) gocv.Mat {
	m := gocv.GetRotationMatrix2D(pivot, rotation/math.Pi*180, 1.0)
	defer m.Close()

	oriented := gocv.NewMat()
	gocv.WarpAffine(frame, &oriented, m, image.Point{X: frame.Cols(), Y: frame.Rows()})
	return oriented
}
