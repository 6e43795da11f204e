package repository

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// IsRecordSQLEvent 控制是否把 SQL 记录为 span 事件
var IsRecordSQLEvent = true

// 查询类错误哨兵，调用方用 errors.Is 区分未命中和存储故障
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrMultipleRecords = errors.New("multiple records found")
)

// QueryOption 查询选项：过滤、排序、分页、加锁
type QueryOption struct {
	OrderBy string
	Limit   int
	Offset  int
	Lock    string
	Filters []Condition
}

// QueryResult Data 为元素类型的值切片，调用方负责类型断言
type QueryResult struct {
	Data  any
	Total int64
}

type TransactionFunc func(ctx context.Context) (any, error)

// TransactionExecutor 事务执行接口。
// Begin 返回携带事务会话的上下文，后续操作传入该上下文即加入事务。
type TransactionExecutor interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Transaction 在事务中执行 fn，自动提交或回滚（含 panic 场景）。
	// fn 内的数据库操作必须使用传入的上下文。
	Transaction(ctx context.Context, fn TransactionFunc) (any, error)
}

// ORMProcessor 通用 ORM 操作接口，屏蔽底层 ORM 实现。
// model 参数均为指向结构体的指针，列名由结构体标签决定。
type ORMProcessor interface {
	Create(ctx context.Context, model any) error

	// Update 按 model 的主键更新非零值字段
	Update(ctx context.Context, model any) error

	UpdateByOption(ctx context.Context, model any, opts *QueryOption) error

	// Delete 按 model 的主键删除
	Delete(ctx context.Context, model any) error

	DeleteByOption(ctx context.Context, model any, opts *QueryOption) error

	Query(ctx context.Context, model any, opts *QueryOption) (*QueryResult, error)

	BatchCreate(ctx context.Context, models []any) error
	BatchUpdate(ctx context.Context, models []any) error
	BatchDelete(ctx context.Context, models []any) error

	// Exec 执行原生 SQL，返回受影响行数
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) (map[string]any, error)
	QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error)

	// BuildFiltersFromModel 从模型的非零字段生成查询条件
	BuildFiltersFromModel(model any) []Condition

	TransactionExecutor
}

// 事务会话的上下文键，避免与其他包冲突
type transactionKey struct{}

var TransactionKeyInstance = transactionKey{}

func recordDbEvent(ctx context.Context, info map[string]any) {
	if !IsRecordSQLEvent {
		return
	}
	span := trace.SpanFromContext(ctx)
	attributes := make([]attribute.KeyValue, 0, len(info))
	for k, v := range info {
		attributes = append(attributes, attribute.String(k, fmt.Sprintf("%v", v)))
	}
	span.AddEvent("db_execute_info", trace.WithAttributes(attributes...))
}
