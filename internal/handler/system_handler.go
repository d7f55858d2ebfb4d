package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/response"
)

// How often a snapshot is pushed to connected SSE clients.
const metricsPushEvery = 7 * time.Second

// SystemHandler pushes host and runtime health snapshots over SSE so the
// admin panel can render live charts without polling.
type SystemHandler struct {
	rdb     *redis.Client
	bootAt  time.Time
	cpuName string
	log     zerolog.Logger

	// last observed /proc/stat counters, used to compute usage deltas
	lastIdleTicks  uint64
	lastTotalTicks uint64
}

func NewSystemHandler(rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	h := &SystemHandler{
		rdb:     rdb,
		bootAt:  time.Now(),
		cpuName: cpuModelName(),
		log:     log.With().Str("component", "system_handler").Logger(),
	}
	// Take a baseline sample now, otherwise the first delta is garbage.
	h.lastIdleTicks, h.lastTotalTicks, _ = cpuTicks()
	return h
}

type systemMetrics struct {
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`

	// host
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedBytes   uint64  `json:"mem_used_bytes"`
	MemTotalBytes  uint64  `json:"mem_total_bytes"`
	MemPercent     float64 `json:"mem_percent"`
	DiskUsedBytes  uint64  `json:"disk_used_bytes"`
	DiskTotalBytes uint64  `json:"disk_total_bytes"`
	DiskPercent    float64 `json:"disk_percent"`
	LoadAvg1       float64 `json:"load_avg_1"`
	LoadAvg5       float64 `json:"load_avg_5"`
	LoadAvg15      float64 `json:"load_avg_15"`

	// process
	Goroutines  int    `json:"goroutines"`
	HeapAlloc   uint64 `json:"heap_alloc"`
	HeapSys     uint64 `json:"heap_sys"`
	StackInuse  uint64 `json:"stack_inuse"`
	NumGC       uint32 `json:"num_gc"`
	AppRSSBytes uint64 `json:"app_rss_bytes"`
	GoVersion   string `json:"go_version"`
	NumCPU      int    `json:"num_cpu"`
	CPUModel    string `json:"cpu_model"`

	// background queue depths
	QueueAnswers int64 `json:"queue_answers"`
	QueueScores  int64 `json:"queue_scores"`
}

// SystemMetricsSSE godoc
// GET /api/v1/staff/system/metrics
func (h *SystemHandler) SystemMetricsSSE(c *gin.Context) {
	if middleware.GetClaims(c) == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	h.log.Info().Msg("Admin connected to system metrics SSE")

	ticker := time.NewTicker(metricsPushEvery)
	defer ticker.Stop()

	// First sample goes out right away so the UI isn't blank for 7s.
	h.pushSnapshot(c)

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			h.log.Info().Msg("Admin disconnected from system metrics SSE")
			return
		case <-ticker.C:
			h.pushSnapshot(c)
		}
	}
}

func (h *SystemHandler) pushSnapshot(c *gin.Context) {
	payload, err := json.Marshal(h.snapshot())
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
	c.Writer.Flush()
}

func (h *SystemHandler) snapshot() systemMetrics {
	m := systemMetrics{
		Timestamp: time.Now().Unix(),
		Uptime:    prettyUptime(time.Since(h.bootAt)),
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		CPUModel:  h.cpuName,
	}

	if idle, total, err := cpuTicks(); err == nil && total > h.lastTotalTicks {
		busy := 1 - float64(idle-h.lastIdleTicks)/float64(total-h.lastTotalTicks)
		m.CPUPercent = busy * 100
		h.lastIdleTicks = idle
		h.lastTotalTicks = total
	}

	if total, avail, err := memInfo(); err == nil && total > 0 {
		m.MemTotalBytes = total
		m.MemUsedBytes = total - avail
		m.MemPercent = float64(m.MemUsedBytes) / float64(total) * 100
	}

	if total, free, err := diskUsage("/"); err == nil && total > 0 {
		m.DiskTotalBytes = total
		m.DiskUsedBytes = total - free
		m.DiskPercent = float64(m.DiskUsedBytes) / float64(total) * 100
	}

	m.LoadAvg1, m.LoadAvg5, m.LoadAvg15, _ = loadAverages()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.Goroutines = runtime.NumGoroutine()
	m.HeapAlloc = ms.HeapAlloc
	m.HeapSys = ms.Sys
	m.StackInuse = ms.StackInuse
	m.NumGC = ms.NumGC
	m.AppRSSBytes, _ = ownRSS()

	// Both LLENs in one round trip.
	ctx := context.Background()
	pipe := h.rdb.Pipeline()
	answers := pipe.LLen(ctx, config.WorkerKey.PersistAnswersQueue)
	scores := pipe.LLen(ctx, config.WorkerKey.PersistScoresQueue)
	if _, err := pipe.Exec(ctx); err == nil {
		m.QueueAnswers, _ = answers.Result()
		m.QueueScores, _ = scores.Result()
	}

	return m
}

// cpuTicks returns the idle and total jiffies from the aggregate cpu line
// of /proc/stat.
func cpuTicks() (idle, total uint64, err error) {
	raw, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, 0, err
	}
	first := strings.SplitN(string(raw), "\n", 2)[0]
	cols := strings.Fields(first)
	if len(cols) < 5 || cols[0] != "cpu" {
		return 0, 0, fmt.Errorf("unexpected /proc/stat format")
	}
	for i, col := range cols[1:] {
		v, _ := strconv.ParseUint(col, 10, 64)
		total += v
		if i == 3 { // user nice system IDLE ...
			idle = v
		}
	}
	return idle, total, nil
}

func cpuModelName() string {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "Unknown"
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if name, ok := strings.CutPrefix(sc.Text(), "model name"); ok {
			if _, v, found := strings.Cut(name, ":"); found {
				return strings.TrimSpace(v)
			}
		}
	}
	return "Unknown"
}

// memInfo returns MemTotal and MemAvailable in bytes.
func memInfo() (total, available uint64, err error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	seen := 0
	for sc.Scan() && seen < 2 {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			total = kbFieldToBytes(line)
			seen++
		case strings.HasPrefix(line, "MemAvailable:"):
			available = kbFieldToBytes(line)
			seen++
		}
	}
	return total, available, nil
}

// kbFieldToBytes parses lines shaped like "MemTotal:  16384000 kB".
func kbFieldToBytes(line string) uint64 {
	cols := strings.Fields(line)
	if len(cols) < 2 {
		return 0
	}
	kb, _ := strconv.ParseUint(cols[1], 10, 64)
	return kb * 1024
}

func diskUsage(path string) (total, free uint64, err error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	bs := uint64(st.Bsize)
	return st.Blocks * bs, st.Bavail * bs, nil
}

func loadAverages() (l1, l5, l15 float64, err error) {
	raw, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, 0, 0, err
	}
	cols := strings.Fields(string(raw))
	if len(cols) < 3 {
		return 0, 0, 0, fmt.Errorf("unexpected /proc/loadavg format")
	}
	l1, _ = strconv.ParseFloat(cols[0], 64)
	l5, _ = strconv.ParseFloat(cols[1], 64)
	l15, _ = strconv.ParseFloat(cols[2], 64)
	return l1, l5, l15, nil
}

// ownRSS reads the resident set size of this process from /proc/self/status.
func ownRSS() (uint64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "VmRSS:") {
			return kbFieldToBytes(sc.Text()), nil
		}
	}
	return 0, fmt.Errorf("VmRSS not found")
}

func prettyUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	default:
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
}
