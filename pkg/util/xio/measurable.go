package xio

import (
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	_ MeasurableWriter = (*measurableWriter)(nil)
	_ MeasurableReader = (*measurableReader)(nil)
)

// Measurable reports throughput of an in-flight read or write.
type Measurable interface {
	// BytesPer returns the bytes per period read/written since the last call.
	BytesPer(period time.Duration) float64
	// Total returns the cumulative byte count.
	Total() int64
}

// MeasurableWriter is an io.Writer that tracks its own throughput.
type MeasurableWriter interface {
	io.Writer
	Measurable
}

// MeasurableReader is an io.Reader that tracks its own throughput.
type MeasurableReader interface {
	io.Reader
	Measurable
}

// NewMeasuredWriter wraps w to track bytes written, for example to report
// progress while spooling a layer to disk.
func NewMeasuredWriter(w io.Writer) MeasurableWriter {
	return &measurableWriter{wrap: w, rate: newRateCounter()}
}

type measurableWriter struct {
	wrap io.Writer
	rate *rateCounter
}

func (m *measurableWriter) BytesPer(period time.Duration) float64 {
	return m.rate.Rate(period)
}

func (m *measurableWriter) Total() int64 {
	return m.rate.Total()
}

func (m *measurableWriter) Write(b []byte) (n int, err error) {
	n, err = m.wrap.Write(b)
	m.rate.Add(n)
	return n, err
}

// NewMeasuredReader wraps r to track bytes read, for example to report
// download progress while streaming a manifest blob or layer.
func NewMeasuredReader(r io.Reader) MeasurableReader {
	return &measurableReader{wrap: r, rate: newRateCounter()}
}

type measurableReader struct {
	wrap io.Reader
	rate *rateCounter
}

func (m *measurableReader) BytesPer(period time.Duration) float64 {
	return m.rate.Rate(period)
}

func (m *measurableReader) Total() int64 {
	return m.rate.Total()
}

func (m *measurableReader) Read(b []byte) (n int, err error) {
	n, err = m.wrap.Read(b)
	m.rate.Add(n)
	return n, err
}

func newRateCounter() *rateCounter {
	return &rateCounter{time: clock.New()}
}

type rateCounter struct {
	sync.RWMutex
	time clock.Clock

	count     int64
	lastCount int64
	lastCheck time.Time
}

func (c *rateCounter) Add(n int) {
	c.Lock()
	defer c.Unlock()

	c.count += int64(n)
	if c.lastCheck.IsZero() {
		c.lastCheck = c.time.Now()
	}
}

func (c *rateCounter) Total() int64 {
	c.RLock()
	defer c.RUnlock()
	return c.count
}

func (c *rateCounter) Rate(period time.Duration) float64 {
	c.Lock()
	defer c.Unlock()

	now := c.time.Now()
	between := now.Sub(c.lastCheck)
	changed := c.count - c.lastCount
	rate := float64(changed*int64(period)) / float64(between)

	c.lastCount = c.count
	c.lastCheck = now
	return rate
}
