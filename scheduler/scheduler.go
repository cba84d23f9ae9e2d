package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"serenity/config"
	"serenity/logger"
)

// 默认的每日预热时间
const (
	defaultHour   = 4
	defaultMinute = 0
)

// Warmer 缓存预热
type Warmer interface {
	Categories() []string
	WarmWithConcurrency(ctx context.Context, categories []string, concurrency int) int
}

// 将秒数转换为时间间隔
func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// 验证小时和分钟是否有效
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour, "default", defaultHour)
		hour = defaultHour
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute, "default", defaultMinute)
		minute = defaultMinute
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskCacheWarm TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg    *config.Config
	warmer Warmer
	tasks  map[TaskType]*TaskStatus
	mutex  sync.Mutex
	wg     sync.WaitGroup
}

// 创建新的调度器
func NewScheduler(cfg *config.Config, warmer Warmer) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		warmer: warmer,
		tasks:  make(map[TaskType]*TaskStatus),
	}
}

// Start 初始化任务并启动主循环，ctx取消后停止
func Start(ctx context.Context, cfg *config.Config, warmer Warmer) *Scheduler {
	scheduler := NewScheduler(cfg, warmer)

	// 初始化任务
	scheduler.initTasks(time.Now())

	// 启动主循环
	go scheduler.run(ctx)

	logger.Info("调度器已启动", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
	return scheduler
}

// 初始化任务
func (s *Scheduler) initTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// 缓存预热任务 - 根据debug模式决定运行频率
	if s.cfg.Debug.Enabled {
		freqSeconds := s.cfg.Debug.WarmFreqSec
		s.tasks[TaskCacheWarm] = &TaskStatus{
			LastRun:     now,
			NextRun:     now.Add(secondsToDuration(freqSeconds)),
			Description: fmt.Sprintf("缓存预热 (Debug模式: 每%d秒)", freqSeconds),
		}
		logger.Info("Debug模式已启用", "frequency_seconds", freqSeconds)
	} else {
		// 正常模式：每天在指定时间点预热
		hour, minute := validateHourMinute(s.cfg.Scheduler.WarmHour, s.cfg.Scheduler.WarmMinute)
		nextRun := getNextTimePoint(now, hour, minute)
		s.tasks[TaskCacheWarm] = &TaskStatus{
			LastRun:     nextRun.AddDate(0, 0, -1),
			NextRun:     nextRun,
			Description: fmt.Sprintf("缓存预热 (%02d:%02d)", hour, minute),
		}
		logger.Info("正常模式", "schedule_time", fmt.Sprintf("%02d:%02d", hour, minute))
	}

	logger.Info("定时任务初始化完成", "task_count", len(s.tasks))
}

// 主循环
func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(secondsToDuration(s.cfg.Scheduler.CheckIntervalSec))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("调度器已停止")
			return
		case now := <-ticker.C:
			s.checkTasks(ctx, now)
		}
	}
}

// 检查任务
func (s *Scheduler) checkTasks(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过
		if status.IsRunning {
			continue
		}

		// 如果任务的NextRun为零值，跳过（表示不需要定期调度）
		if status.NextRun.IsZero() {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if !now.Before(status.NextRun) {
			status.IsRunning = true
			s.wg.Add(1)
			go s.runTask(ctx, taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(ctx context.Context, taskType TaskType, now time.Time) {
	defer s.wg.Done()
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		switch taskType {
		case TaskCacheWarm:
			if s.cfg.Debug.Enabled {
				status.NextRun = now.Add(secondsToDuration(s.cfg.Debug.WarmFreqSec))
			} else {
				hour, minute := validateHourMinute(s.cfg.Scheduler.WarmHour, s.cfg.Scheduler.WarmMinute)
				status.NextRun = getNextTimePoint(now.Add(time.Minute), hour, minute)
			}
		}

		logger.Info("任务执行完成", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskCacheWarm:
		categories := s.warmer.Categories()
		logger.Info("开始预热推荐缓存", "categories", len(categories), "concurrency", s.cfg.Scheduler.Concurrency)
		warmed := s.warmer.WarmWithConcurrency(ctx, categories, s.cfg.Scheduler.Concurrency)
		logger.Info("推荐缓存预热完成", "warmed", warmed)
	}
}

// Status 返回任务状态副本
func (s *Scheduler) Status(taskType TaskType) (TaskStatus, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	status, ok := s.tasks[taskType]
	if !ok {
		return TaskStatus{}, false
	}
	return *status, true
}

// Wait 等待正在运行的任务结束
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
