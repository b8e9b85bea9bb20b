package gstats

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

const statsWindow = 120

// FrameStats keeps the last frame intervals for the debug overlay.
type FrameStats struct {
	last    time.Time
	samples []float64
	next    int
}

func NewFrameStats() *FrameStats {
	return &FrameStats{samples: make([]float64, 0, statsWindow)}
}

func (fs *FrameStats) Tick(now time.Time) {
	if !fs.last.IsZero() {
		ms := float64(now.Sub(fs.last)) / float64(time.Millisecond)
		if len(fs.samples) < statsWindow {
			fs.samples = append(fs.samples, ms)
		} else {
			fs.samples[fs.next] = ms
			fs.next = (fs.next + 1) % statsWindow
		}
	}
	fs.last = now
}

// Summary returns mean and 95th percentile frame interval in milliseconds.
func (fs *FrameStats) Summary() (mean, p95 float64, err error) {
	data := stats.Float64Data(fs.samples)
	if mean, err = stats.Mean(data); err != nil {
		return 0, 0, err
	}
	if p95, err = stats.Percentile(data, 95); err != nil {
		return 0, 0, err
	}
	return mean, p95, nil
}

func (fs *FrameStats) String() string {
	mean, p95, err := fs.Summary()
	if err != nil {
		return "frame: n/a"
	}
	return fmt.Sprintf("frame: mean %.1fms p95 %.1fms (%d)", mean, p95, len(fs.samples))
}
