package cron

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTask() {}

func TestTaskManager_AddAndRemove(t *testing.T) {
	manager := NewTaskManager(nil)

	require.NoError(t, manager.AddTask("nightly", "0 0 * * *", noopTask))
	tasks := manager.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "nightly", tasks[0]["name"])
	assert.Equal(t, "0 0 * * *", tasks[0]["cron_expr"])
	assert.NotEmpty(t, tasks[0]["next_run"])

	// 重名任务拒绝注册
	assert.Error(t, manager.AddTask("nightly", "30 0 * * *", noopTask))

	manager.RemoveTask("nightly")
	assert.Len(t, manager.ListTasks(), 0)

	// 移除不存在的任务不报错
	manager.RemoveTask("ghost")
}

func TestTaskManager_AddTask_InvalidExpr(t *testing.T) {
	manager := NewTaskManager(nil)
	err := manager.AddTask("broken", "not-a-cron-expr", noopTask)
	assert.Error(t, err)
	assert.Len(t, manager.ListTasks(), 0)
}

func TestTaskManager_PauseResume(t *testing.T) {
	manager := NewTaskManager(nil)
	require.NoError(t, manager.AddTask("sync", "*/5 * * * *", noopTask))

	assert.Equal(t, "running", manager.GetTaskStatus("sync"))

	manager.PauseTask("sync")
	assert.Equal(t, "paused", manager.GetTaskStatus("sync"))

	manager.ResumeTask("sync")
	assert.Equal(t, "running", manager.GetTaskStatus("sync"))

	assert.Equal(t, "not exist", manager.GetTaskStatus("ghost"))
}

func TestTaskManager_StartAndStop(t *testing.T) {
	manager := NewTaskManager(nil)
	require.NoError(t, manager.AddTask("nightly", "0 0 * * *", noopTask))

	manager.Start()
	manager.Stop()
}

func TestTaskManager_ListTasks_Status(t *testing.T) {
	manager := NewTaskManager(nil)
	require.NoError(t, manager.AddTask("a", "0 0 * * *", noopTask))
	require.NoError(t, manager.AddTask("b", "30 0 * * *", noopTask))
	manager.PauseTask("a")

	statuses := make(map[string]string)
	for _, info := range manager.ListTasks() {
		statuses[info["name"].(string)] = info["status"].(string)
	}
	assert.Equal(t, map[string]string{"a": "paused", "b": "running"}, statuses)
}

func TestTaskManager_LoadTasksFromYAML(t *testing.T) {
	manager := NewTaskManager(nil)
	registry := NewTaskRegistry()
	registry.Register("health_task", noopTask)

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: health_task
  cron_expr: "*/1 * * * *"
`), 0o644))

	require.NoError(t, manager.LoadTasksFromYAML(path, registry))
	assert.Len(t, manager.ListTasks(), 1)
}

func TestTaskManager_LoadTasks_StrictYAML(t *testing.T) {
	manager := NewTaskManager(nil)
	registry := NewTaskRegistry()
	registry.Register("health_task", noopTask)

	err := manager.LoadTasksFromYAMLBytes([]byte(`
- name: health_task
  cron_expr: 0 0 * * *
  unexpected_field: true
`), registry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Len(t, manager.ListTasks(), 0)
}

func TestTaskManager_LoadTasks_SkipBroken(t *testing.T) {
	manager := NewTaskManager(nil)
	registry := NewTaskRegistry()
	registry.Register("good", noopTask)
	registry.Register("bad_expr", noopTask)
	registry.Register("disabled", noopTask)

	// 未注册、表达式非法、禁用的任务都跳过，不影响其余任务
	err := manager.LoadTasks([]TaskConfig{
		{Name: "good", CronExpr: "0 0 * * *"},
		{Name: "unregistered", CronExpr: "0 0 * * *"},
		{Name: "bad_expr", CronExpr: "whenever"},
		{Name: "disabled", CronExpr: "0 12 * * *", Disabled: true},
	}, registry)
	require.NoError(t, err)

	tasks := manager.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "good", tasks[0]["name"])
}
