package cron

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v2"
)

// Logger 任务管理器使用的日志接口
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultLogger 委托给全局 zap 日志
type DefaultLogger struct{}

func (l *DefaultLogger) Info(msg string, args ...any) {
	logger.Infof(context.Background(), msg, args...)
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	logger.Warnf(context.Background(), msg, args...)
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	logger.Errorf(context.Background(), msg, args...)
}

// taskEntry 注册在管理器中的单个任务
type taskEntry struct {
	entryID  cron.EntryID
	cronExpr string
	paused   bool
}

// TaskManager 定时任务管理器，表达式为标准五段 cron
type TaskManager struct {
	scheduler *cron.Cron
	mu        sync.RWMutex
	tasks     map[string]*taskEntry
	logger    Logger
}

func NewTaskManager(log Logger) *TaskManager {
	if log == nil {
		log = &DefaultLogger{}
	}
	return &TaskManager{
		scheduler: cron.New(),
		tasks:     make(map[string]*taskEntry),
		logger:    log,
	}
}

// Start 启动调度器
func (tm *TaskManager) Start() {
	tm.scheduler.Start()
	tm.logger.Info("All scheduled tasks started")
}

// Stop 停止调度器并等待运行中的任务结束
func (tm *TaskManager) Stop() {
	<-tm.scheduler.Stop().Done()
	tm.logger.Info("All scheduled tasks stopped")
}

// AddTask 注册定时任务，任务名唯一
func (tm *TaskManager) AddTask(name, cronExpr string, task func()) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, exists := tm.tasks[name]; exists {
		return fmt.Errorf("task %s already exists", name)
	}

	entry := &taskEntry{cronExpr: cronExpr}
	entryID, err := tm.scheduler.AddFunc(cronExpr, func() {
		tm.mu.RLock()
		paused := entry.paused
		tm.mu.RUnlock()
		if !paused {
			task()
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add task %s: %w", name, err)
	}

	entry.entryID = entryID
	tm.tasks[name] = entry
	tm.logger.Info("Task %s added, expression: %s", name, cronExpr)
	return nil
}

// RemoveTask 移除任务
func (tm *TaskManager) RemoveTask(name string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	entry, exists := tm.tasks[name]
	if !exists {
		tm.logger.Warn("Attempt to remove non-existent task %s", name)
		return
	}
	tm.scheduler.Remove(entry.entryID)
	delete(tm.tasks, name)
	tm.logger.Info("Task %s removed", name)
}

// PauseTask 暂停任务，调度保留但不执行
func (tm *TaskManager) PauseTask(name string) {
	tm.setPaused(name, true)
}

// ResumeTask 恢复暂停的任务
func (tm *TaskManager) ResumeTask(name string) {
	tm.setPaused(name, false)
}

func (tm *TaskManager) setPaused(name string, paused bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	entry, exists := tm.tasks[name]
	if !exists {
		tm.logger.Warn("Attempt to update non-existent task %s", name)
		return
	}
	entry.paused = paused
	if paused {
		tm.logger.Info("Task %s paused", name)
	} else {
		tm.logger.Info("Task %s resumed", name)
	}
}

// GetTaskStatus 返回 running、paused 或 not exist
func (tm *TaskManager) GetTaskStatus(name string) string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	entry, exists := tm.tasks[name]
	if !exists {
		return "not exist"
	}
	if entry.paused {
		return "paused"
	}
	return "running"
}

// ListTasks 返回所有任务的名称、状态、表达式和下次执行时间
func (tm *TaskManager) ListTasks() []map[string]any {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	var tasksInfo []map[string]any
	for name, entry := range tm.tasks {
		spec, err := cron.ParseStandard(entry.cronExpr)
		if err != nil {
			tm.logger.Error("Failed to parse cron expression for task %s: %v", name, err)
			continue
		}
		status := "running"
		if entry.paused {
			status = "paused"
		}
		tasksInfo = append(tasksInfo, map[string]any{
			"name":      name,
			"status":    status,
			"next_run":  spec.Next(time.Now()).Format(time.RFC3339),
			"cron_expr": entry.cronExpr,
		})
	}
	return tasksInfo
}

// TaskConfig YAML 配置中的单个任务
type TaskConfig struct {
	Name     string `yaml:"name"`
	CronExpr string `yaml:"cron_expr"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

type TaskHandlerFunc func()

// TaskRegistry 任务名到处理函数的映射
type TaskRegistry struct {
	tasks map[string]TaskHandlerFunc
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{tasks: make(map[string]TaskHandlerFunc)}
}

func (tr *TaskRegistry) Register(name string, handler TaskHandlerFunc) {
	tr.tasks[name] = handler
}

// LoadTasksFromYAML 从 YAML 文件加载任务
func (tm *TaskManager) LoadTasksFromYAML(filePath string, registry *TaskRegistry) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	return tm.LoadTasksFromYAMLBytes(data, registry)
}

// LoadTasksFromYAMLBytes 严格解析 YAML，未知字段报错
func (tm *TaskManager) LoadTasksFromYAMLBytes(data []byte, registry *TaskRegistry) error {
	var taskConfigs []TaskConfig
	if err := yaml.UnmarshalStrict(data, &taskConfigs); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return tm.LoadTasks(taskConfigs, registry)
}

// LoadTasks 加载任务配置。禁用的、未注册的和表达式非法的任务跳过不报错。
func (tm *TaskManager) LoadTasks(taskConfigs []TaskConfig, registry *TaskRegistry) error {
	for _, config := range taskConfigs {
		if config.Disabled {
			tm.logger.Info("Skipping disabled task: %s", config.Name)
			continue
		}
		handler, exists := registry.tasks[config.Name]
		if !exists {
			tm.logger.Warn("Task %s has no registered handler", config.Name)
			continue
		}
		if err := tm.AddTask(config.Name, config.CronExpr, handler); err != nil {
			tm.logger.Error("Failed to load task %s: %v", config.Name, err)
			continue
		}
	}
	return nil
}
