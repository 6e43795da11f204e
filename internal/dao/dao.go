package dao

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
)

var (
	isSyncDB  bool = true
	engine    *xorm.Engine
	initOnce  sync.Once
	initError error

	UserRepo     repository.Repository[models.User]
	RoleRepo     repository.Repository[models.Role]
	MenuRepo     repository.Repository[models.Menu]
	DeptRepo     repository.Repository[models.Dept]
	UserRoleRepo repository.Repository[models.UserRole]
)

// syncModels 按外键依赖顺序排列，删表时逆序处理
var syncModels = []any{
	new(models.Dept),
	new(models.User),
	new(models.Role),
	new(models.Menu),
	new(models.UserRole),
}

var xormLogLevels = map[string]log.LogLevel{
	"debug": log.LOG_DEBUG,
	"info":  log.LOG_INFO,
	"warn":  log.LOG_WARNING,
	"error": log.LOG_ERR,
}

// InitRepo 初始化数据库引擎与各实体仓储，可重复调用
func InitRepo() error {
	initOnce.Do(func() {
		var err error
		engine, err = InitDB()
		if err != nil {
			// 错误交给启动侧的 multierror 汇总上报
			initError = fmt.Errorf("failed to initialize database: %w", err)
			return
		}

		processor := repository.NewXormProcessor(engine)
		UserRepo = repository.NewRepository[models.User](processor)
		RoleRepo = repository.NewRepository[models.Role](processor)
		MenuRepo = repository.NewRepository[models.Menu](processor)
		DeptRepo = repository.NewRepository[models.Dept](processor)
		UserRoleRepo = repository.NewRepository[models.UserRole](processor)
	})

	return initError
}

// InitDB 使用配置初始化 XORM 引擎
func InitDB() (*xorm.Engine, error) {
	dbConfig := config.Get().Database

	eng, err := xorm.NewEngine("mysql", buildDSN(dbConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to create XORM engine: %w", err)
	}

	// 连接池
	eng.SetMaxIdleConns(dbConfig.MaxIdleConns)
	eng.SetMaxOpenConns(dbConfig.MaxOpenConns)
	eng.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)

	// SQL 日志与慢查询记录
	eng.AddHook(NewXormLogger(dbConfig.ShowSQL))
	level, ok := xormLogLevels[config.Get().Logger.Level]
	if !ok {
		level = log.LOG_INFO
	}
	eng.Logger().SetLevel(level)

	if isSyncDB {
		if err := SyncDB(eng, false, false); err != nil {
			eng.Close()
			return nil, fmt.Errorf("failed to sync database: %w", err)
		}
	}

	return eng, nil
}

func buildDSN(db config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.DBName)
}

// SyncDB 同步数据库表结构
// dropTables 为 true 时先删除现有表（危险操作，生产环境慎用）
// interactive 控制删表前是否需要人工确认
func SyncDB(engine *xorm.Engine, dropTables, interactive bool) error {
	ctx := context.Background()
	var result *multierror.Error

	if dropTables {
		if interactive && !confirmDrop(ctx) {
			return nil
		}
		// 逆序删表，规避外键约束
		for i := len(syncModels) - 1; i >= 0; i-- {
			tableName := engine.TableName(syncModels[i])
			logger.Info(ctx, "删除表", zap.String("table", tableName))
			if _, err := engine.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", tableName)); err != nil {
				result = multierror.Append(result, fmt.Errorf("删除表 %s 失败: %w", tableName, err))
			}
		}
	}

	for _, model := range syncModels {
		tableName := engine.TableName(model)
		logger.Info(ctx, "同步表结构", zap.String("table", tableName))
		if err := engine.Sync2(model); err != nil {
			result = multierror.Append(result, fmt.Errorf("同步表 %s 失败: %w", tableName, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		logger.Error(ctx, "数据库同步完成，但存在错误", zap.Error(err))
		return err
	}

	logger.Info(ctx, "数据库同步成功")
	return nil
}

func confirmDrop(ctx context.Context) bool {
	fmt.Print("警告：即将删除所有表并重新创建！是否继续？(y/N): ")
	var response string
	fmt.Scanln(&response)
	if strings.EqualFold(response, "y") || strings.EqualFold(response, "yes") {
		return true
	}
	logger.Info(ctx, "同步操作已取消")
	return false
}
