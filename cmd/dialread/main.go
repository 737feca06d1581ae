// Command dialread runs the dial-indicator measurement pipeline on a
// camera stream or a still image and prints the readings. With -debug it
// also writes the per-cycle segmentation masks, skeletons and annotated
// overlay to disk.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"

	"gauge-cam/internal/gauge"
	"gauge-cam/internal/log"
)

func main() {
	cameraID := flag.Int("camera", -1, "Camera device ID (-1 to disable)")
	imagePath := flag.String("image", "", "Path to a still dial image (TIFF, PNG, or JPEG)")
	frames := flag.Int("frames", 0, "Number of cycles to run (0 = until the stream ends)")
	debugDir := flag.String("debug", "", "Directory to write debug artifacts into")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	if *cameraID < 0 && *imagePath == "" {
		fmt.Println("Usage: dialread -camera <id> | -image <path> [-frames N] [-debug dir]")
		os.Exit(1)
	}

	cfg := gauge.DefaultConfig()
	cfg.KeepDebug = *debugDir != ""
	session := gauge.NewSession(cfg)
	log.Info("session started", "id", session.ID())

	var err error
	if *imagePath != "" {
		err = runStill(session, *imagePath, *frames, *debugDir)
	} else {
		err = runCamera(session, *cameraID, *frames, *debugDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialread: %v\n", err)
		os.Exit(1)
	}
}

// runStill feeds one decoded image through the pipeline repeatedly. A
// single still cannot exercise smoothing, but it is the quickest way to
// check calibration and debug the segmentation.
func runStill(session *gauge.Session, path string, frames int, debugDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	log.Info("image loaded", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	frame := gauge.ImageToMat(img)
	defer frame.Close()

	if frames <= 0 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		cycle(session, frame, i, debugDir)
	}
	return nil
}

// runCamera drives the pipeline from a live capture device. Each read
// delivers the most recent frame; stale frames are worthless for a live
// display, so nothing is queued.
func runCamera(session *gauge.Session, deviceID, frames int, debugDir string) error {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", deviceID, err)
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; frames <= 0 || i < frames; i++ {
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			log.Warn("camera stream ended", "cycles", i)
			return nil
		}
		cycle(session, frame, i, debugDir)
	}
	return nil
}

func cycle(session *gauge.Session, frame gocv.Mat, index int, debugDir string) {
	m, dbg := session.Process(frame)

	if m == nil {
		fmt.Printf("%6d  pending\n", index)
	} else {
		fmt.Printf("%6d  %8.3f mm  (black %6.3f mm @ %5.2f rad, red %6.3f mm @ %5.2f rad)\n",
			index, m.MMFinal, m.MMBlack, m.ThetaBlack, m.MMRed, m.ThetaRed)
	}

	if dbg != nil {
		writeDebug(session.ID(), dbg, index, debugDir)
		dbg.Close()
	}
}

func writeDebug(sessionID string, dbg *gauge.Debug, index int, dir string) {
	prefix := filepath.Join(dir, fmt.Sprintf("%.8s_%06d", sessionID, index))
	for name, mat := range map[string]gocv.Mat{
		"oriented":   dbg.Oriented,
		"overlay":    dbg.Overlay,
		"seg_black":  dbg.BlackSeg,
		"skel_black": dbg.BlackSkel,
		"seg_red":    dbg.RedSeg,
		"skel_red":   dbg.RedSkel,
	} {
		fn := fmt.Sprintf("%s_%s.png", prefix, name)
		if ok := gocv.IMWrite(fn, mat); !ok {
			log.Warn("failed to write debug image", "file", fn)
		}
	}
	log.Debug("debug artifacts written", "cycle", index,
		"black_iterations", dbg.BlackIterations, "red_iterations", dbg.RedIterations)
}
