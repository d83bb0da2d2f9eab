package sysmon

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
	"github.com/prometheus/procfs"
)

// Source reads CPU, RAM and network counters from /proc. CPU and
// network are rate-based and need a previous pass, so the first sample
// reports them unavailable (warm-up); the normalizer upstream fills in.
//
// Owned by the poll path; not safe for concurrent use.
type Source struct {
	fs  procfs.FS
	log logger.Logger
	now func() time.Time

	prevCPU   *cpuCounters
	prevNet   *netCounters
	prevNetAt time.Time
}

type cpuCounters struct {
	busy  float64
	total float64
}

type netCounters struct {
	bytes uint64
}

func New(log logger.Logger) (*Source, error) {
	errFactory := errors.New()

	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, errFactory.Wrap(ErrProcUnavailable, err)
	}

	return &Source{
		fs:  fs,
		log: log,
		now: time.Now,
	}, nil
}

// Sample reads all counters once. Each field degrades independently: a
// counter that cannot be read this cycle comes back nil rather than
// failing the whole sample.
func (s *Source) Sample() emotion.Reading {
	now := s.now()
	r := emotion.Reading{Time: now}

	r.CPU = s.sampleCPU()
	r.RAM = s.sampleRAM()
	r.Net = s.sampleNet(now)

	return r
}

func (s *Source) sampleCPU() *float64 {
	stat, err := s.fs.Stat()
	if err != nil {
		s.log.Debug().Err(err).Msg("Failed to read cpu counters")
		s.prevCPU = nil

		return nil
	}

	cur := cpuCountersFromStat(stat.CPUTotal)
	prev := s.prevCPU
	s.prevCPU = &cur

	if prev == nil {
		return nil
	}

	pct, ok := cpuPercent(*prev, cur)
	if !ok {
		return nil
	}

	return &pct
}

func cpuCountersFromStat(c procfs.CPUStat) cpuCounters {
	idle := c.Idle + c.Iowait
	busy := c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal

	return cpuCounters{
		busy:  busy,
		total: busy + idle,
	}
}

// cpuPercent derives busy percent from two counter passes. Returns
// false when the counters did not advance (or went backwards after a
// counter reset).
func cpuPercent(prev, cur cpuCounters) (float64, bool) {
	dTotal := cur.total - prev.total
	dBusy := cur.busy - prev.busy

	if dTotal <= 0 || dBusy < 0 {
		return 0, false
	}

	pct := 100 * dBusy / dTotal
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return pct, true
}

func (s *Source) sampleRAM() *float64 {
	mem, err := s.fs.Meminfo()
	if err != nil {
		s.log.Debug().Err(err).Msg("Failed to read meminfo")
		return nil
	}

	pct, ok := ramPercent(mem)
	if !ok {
		return nil
	}

	return &pct
}

// ramPercent prefers MemAvailable; older kernels without it fall back
// to free plus reclaimable caches.
func ramPercent(mem procfs.Meminfo) (float64, bool) {
	if mem.MemTotal == nil || *mem.MemTotal == 0 {
		return 0, false
	}
	total := float64(*mem.MemTotal)

	var available float64
	switch {
	case mem.MemAvailable != nil:
		available = float64(*mem.MemAvailable)
	case mem.MemFree != nil:
		available = float64(*mem.MemFree)
		if mem.Buffers != nil {
			available += float64(*mem.Buffers)
		}
		if mem.Cached != nil {
			available += float64(*mem.Cached)
		}
	default:
		return 0, false
	}

	used := total - available
	if used < 0 {
		used = 0
	}

	return 100 * used / total, true
}

func (s *Source) sampleNet(now time.Time) *float64 {
	dev, err := s.fs.NetDev()
	if err != nil {
		s.log.Debug().Err(err).Msg("Failed to read network counters")
		s.prevNet = nil

		return nil
	}

	cur := netCounters{bytes: totalBytes(dev)}
	prev := s.prevNet
	prevAt := s.prevNetAt
	s.prevNet = &cur
	s.prevNetAt = now

	if prev == nil {
		return nil
	}

	kbps, ok := netRate(prev.bytes, cur.bytes, now.Sub(prevAt))
	if !ok {
		return nil
	}

	return &kbps
}

// totalBytes sums rx+tx across every interface except loopback
func totalBytes(dev procfs.NetDev) uint64 {
	var sum uint64
	for name, line := range dev {
		if name == "lo" {
			continue
		}
		sum += line.RxBytes + line.TxBytes
	}

	return sum
}

// netRate converts a byte-counter delta into KB/s. Returns false on a
// counter reset or a non-positive elapsed interval.
func netRate(prevBytes, curBytes uint64, elapsed time.Duration) (float64, bool) {
	if elapsed <= 0 || curBytes < prevBytes {
		return 0, false
	}

	delta := float64(curBytes - prevBytes)

	return delta / 1024 / elapsed.Seconds(), true
}
