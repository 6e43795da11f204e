package cron

import (
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/cron"
)

// InitCronTask 注册内置任务并按配置启动调度器。
// 配置里没有任务时返回未启动的管理器。
func InitCronTask() (*cron.TaskManager, error) {
	manager := cron.NewTaskManager(nil)

	registry := cron.NewTaskRegistry()
	registry.Register("health_task", healthCheck)

	tasks := config.GetCronTasks()
	if tasks == nil {
		return manager, nil
	}
	if err := manager.LoadTasks(tasks, registry); err != nil {
		return nil, err
	}
	manager.Start()
	return manager, nil
}
