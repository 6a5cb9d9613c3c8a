package game

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatsMonitor 宿主系统状态采样器
// 在后台协程里定期采样 CPU 和内存占用，供设置面板展示。
// 快照通过原子值读写，不触碰宠物视觉状态的任何字段。
type StatsMonitor struct {
	cpuPercent atomic.Uint64 // Float64bits
	memPercent atomic.Uint64

	stop chan struct{}
}

// NewStatsMonitor 创建采样器（需调用 Start 启动）
func NewStatsMonitor() *StatsMonitor {
	return &StatsMonitor{stop: make(chan struct{})}
}

// Start 启动后台采样协程
// 每 2 秒更新一次，避免频繁占用资源
func (m *StatsMonitor) Start() {
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		m.sample()
		for {
			select {
			case <-ticker.C:
				m.sample()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop 停止后台采样协程
func (m *StatsMonitor) Stop() {
	close(m.stop)
}

// Stats 返回最近一次采样的 CPU 与内存占用百分比
func (m *StatsMonitor) Stats() (cpuPercent, memPercent float64) {
	return math.Float64frombits(m.cpuPercent.Load()),
		math.Float64frombits(m.memPercent.Load())
}

// sample 执行一次采样
func (m *StatsMonitor) sample() {
	// Percent(0, false) 取所有核心的平均瞬时值，不阻塞采样窗口
	if c, err := cpu.Percent(0, false); err == nil && len(c) > 0 {
		m.cpuPercent.Store(math.Float64bits(round1(c[0])))
	}

	if v, err := mem.VirtualMemory(); err == nil {
		m.memPercent.Store(math.Float64bits(round1(v.UsedPercent)))
	}
}

// round1 保留 1 位小数，显示用
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
