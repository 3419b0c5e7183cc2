package task

import (
	"sync"

	"github.com/solenote/note-keeper-service/internal/app"
)

// TaskAppFactory 任务工厂函数类型，用于基于应用容器创建任务实例
type TaskAppFactory func(appContainer *app.App) (Task, error)

// taskRegistry 全局任务注册表
var (
	taskRegistry  []TaskAppFactory
	registryMutex sync.RWMutex
)

// RegisterWithApp 注册任务工厂函数
// 通常在各个任务文件的 init() 函数中调用
func RegisterWithApp(factory TaskAppFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories 获取所有已注册的任务工厂
func GetFactories() []TaskAppFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	// 返回副本，避免外部修改
	factories := make([]TaskAppFactory, len(taskRegistry))
	copy(factories, taskRegistry)
	return factories
}
