// Package chart implements the rolling hashrate chart widget: a time series
// of rate samples persisted per wallet in the session store and rendered as a
// block-rune sparkline.
package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"xpdesk/log"
	"xpdesk/store"
)

const keyPrefix = "xpHashrate:"

// Sample is one rate observation. It serializes as a [timestamp, rate] pair
// to match the pool API's history points.
type Sample struct {
	TS   int64
	Rate float64
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(s.TS), s.Rate})
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	s.TS = int64(pair[0])
	s.Rate = pair[1]
	return nil
}

// Options configure the rolling window.
type Options struct {
	// Window is how much history is kept. Defaults to 24h.
	Window time.Duration
	// SampleInterval is the expected spacing between samples; together with
	// Window it bounds the number of retained samples. Defaults to 30s.
	SampleInterval time.Duration
}

func (o *Options) applyDefaults() {
	if o.Window <= 0 {
		o.Window = 24 * time.Hour
	}
	if o.SampleInterval <= 0 {
		o.SampleInterval = 30 * time.Second
	}
}

// Chart holds the sample series for one wallet. Methods are not safe for
// concurrent use; call them from the event loop that owns the widget.
type Chart struct {
	st   store.Store
	key  string
	opts Options

	samples []Sample
	now     func() time.Time
}

// New creates the chart for walletID and loads any persisted samples.
func New(st store.Store, walletID string, opts Options) *Chart {
	opts.applyDefaults()
	c := &Chart{
		st:   st,
		key:  keyPrefix + walletID,
		opts: opts,
		now:  time.Now,
	}
	c.Load()
	return c
}

// Load replaces the in-memory series with the persisted one. Corrupt data is
// treated as an empty series.
func (c *Chart) Load() {
	c.samples = nil
	raw, ok := c.st.Get(c.key)
	if !ok {
		return
	}
	var samples []Sample
	if err := json.Unmarshal([]byte(raw), &samples); err != nil {
		log.WarningLog.Printf("discarding corrupt chart history for %s: %v", c.key, err)
		return
	}
	c.samples = samples
	c.trim(c.now().Unix())
}

// Push records a rate observation at the current time and persists the
// trimmed series.
func (c *Chart) Push(rate float64) {
	c.PushAt(c.now(), rate)
}

// PushAt records a rate observation at the given time.
func (c *Chart) PushAt(at time.Time, rate float64) {
	ts := at.Unix()
	c.samples = append(c.samples, Sample{TS: ts, Rate: rate})
	c.trim(ts)
	c.persist()
}

// trim drops samples that fell out of the window, and bounds the count to
// window/interval in case persisted data came from a shorter interval.
func (c *Chart) trim(nowTS int64) {
	cutoff := nowTS - int64(c.opts.Window/time.Second)
	i := 0
	for i < len(c.samples) && c.samples[i].TS < cutoff {
		i++
	}
	c.samples = c.samples[i:]

	maxSamples := int(c.opts.Window / c.opts.SampleInterval)
	if maxSamples > 0 && len(c.samples) > maxSamples {
		c.samples = c.samples[len(c.samples)-maxSamples:]
	}
}

func (c *Chart) persist() {
	data, err := json.Marshal(c.samples)
	if err != nil {
		return
	}
	if err := c.st.Set(c.key, string(data)); err != nil {
		// Persistence is best-effort; the in-memory series keeps working.
		log.WarningLog.Printf("failed to persist chart history for %s: %v", c.key, err)
	}
}

// Samples returns a copy of the current series.
func (c *Chart) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Peak returns the highest rate in the series, 0 when empty.
func (c *Chart) Peak() float64 {
	peak := 0.0
	for _, s := range c.samples {
		peak = math.Max(peak, s.Rate)
	}
	return peak
}

// Latest returns the most recent sample.
func (c *Chart) Latest() (Sample, bool) {
	if len(c.samples) == 0 {
		return Sample{}, false
	}
	return c.samples[len(c.samples)-1], true
}

var sparkRunes = []rune(" ▁▂▃▄▅▆▇█")

// Render draws the series as a sparkline grid of the given size, one column
// per sample, newest at the right edge. The result has exactly height lines.
func (c *Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	columns := c.samples
	if len(columns) > width {
		columns = columns[len(columns)-width:]
	}

	peak := 0.0
	for _, s := range columns {
		peak = math.Max(peak, s.Rate)
	}

	rows := make([]strings.Builder, height)
	pad := width - len(columns)
	for r := range rows {
		rows[r].Grow(width)
		for i := 0; i < pad; i++ {
			rows[r].WriteRune(' ')
		}
	}

	for _, s := range columns {
		level := 0
		if peak > 0 {
			level = int(math.Round(s.Rate / peak * float64(height*8)))
		}
		for r := 0; r < height; r++ {
			// Row 0 is the top; each row holds eight sub-levels.
			filled := level - (height-1-r)*8
			if filled < 0 {
				filled = 0
			}
			if filled > 8 {
				filled = 8
			}
			rows[r].WriteRune(sparkRunes[filled])
		}
	}

	lines := make([]string, height)
	for r := range rows {
		lines[r] = rows[r].String()
	}
	return strings.Join(lines, "\n")
}

// ResetKeys removes the persisted history for walletID from st.
func ResetKeys(st store.Store, walletID string) error {
	return st.Delete(keyPrefix + walletID)
}

// FormatRate renders a hashes-per-second value with a binary-free SI suffix,
// e.g. 1.23 TH/s.
func FormatRate(v float64) string {
	units := []string{"H/s", "KH/s", "MH/s", "GH/s", "TH/s", "PH/s", "EH/s"}
	i := 0
	for v >= 1000 && i < len(units)-1 {
		v /= 1000
		i++
	}
	if v >= 100 {
		return fmt.Sprintf("%.0f %s", v, units[i])
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}
