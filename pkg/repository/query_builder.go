package repository

import (
	"context"
	"errors"
)

type Op string

func (op Op) String() string {
	return string(op)
}

const (
	OpAnd        Op = "and"
	OpOr         Op = "or"
	OpLike       Op = "like"
	OpStartsWith Op = "startswith"
	OpEndsWith   Op = "endswith"
	OpEq         Op = "eq"
	OpNe         Op = "ne"
	OpGt         Op = "gt"
	OpLt         Op = "lt"
	OpGe         Op = "ge"
	OpLe         Op = "le"
	OpIn         Op = "in"
	OpNotIn      Op = "notin"
	OpNull       Op = "null"
	OpNotNull    Op = "notnull"
)

// Condition 单个查询条件，Value 为原始值，转义由处理器负责
type Condition struct {
	Field string
	Op    Op
	Value any
}

// QueryBuilder 链式查询构建器，条件按添加顺序生效
type QueryBuilder[T any] struct {
	processor  ORMProcessor
	conditions []Condition
	orderBy    string
	limit      int
	offset     int
	lock       string
}

func NewQueryBuilder[T any](processor ORMProcessor) *QueryBuilder[T] {
	return &QueryBuilder[T]{processor: processor}
}

func (qb *QueryBuilder[T]) where(field string, op Op, value any) *QueryBuilder[T] {
	qb.conditions = append(qb.conditions, Condition{Field: field, Op: op, Value: value})
	return qb
}

func (qb *QueryBuilder[T]) Eq(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpEq, value)
}

func (qb *QueryBuilder[T]) Ne(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpNe, value)
}

func (qb *QueryBuilder[T]) And(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpAnd, value)
}

func (qb *QueryBuilder[T]) Or(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpOr, value)
}

func (qb *QueryBuilder[T]) Like(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpLike, value)
}

func (qb *QueryBuilder[T]) StartsWith(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpStartsWith, value)
}

func (qb *QueryBuilder[T]) EndsWith(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpEndsWith, value)
}

func (qb *QueryBuilder[T]) Gt(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpGt, value)
}

func (qb *QueryBuilder[T]) Lt(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpLt, value)
}

func (qb *QueryBuilder[T]) Gte(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpGe, value)
}

func (qb *QueryBuilder[T]) Lte(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpLe, value)
}

// In value 为切片
func (qb *QueryBuilder[T]) In(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpIn, value)
}

func (qb *QueryBuilder[T]) NotIn(field string, value any) *QueryBuilder[T] {
	return qb.where(field, OpNotIn, value)
}

func (qb *QueryBuilder[T]) IsNull(field string) *QueryBuilder[T] {
	return qb.where(field, OpNull, nil)
}

func (qb *QueryBuilder[T]) IsNotNull(field string) *QueryBuilder[T] {
	return qb.where(field, OpNotNull, nil)
}

func (qb *QueryBuilder[T]) OrderBy(fields string) *QueryBuilder[T] {
	qb.orderBy = fields
	return qb
}

func (qb *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	qb.limit = limit
	return qb
}

func (qb *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	qb.offset = offset
	return qb
}

// ForUpdate 行锁
func (qb *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	qb.lock = "FOR UPDATE"
	return qb
}

// GetOptions 导出当前构建的查询选项
func (qb *QueryBuilder[T]) GetOptions() *QueryOption {
	return &QueryOption{
		OrderBy: qb.orderBy,
		Limit:   qb.limit,
		Offset:  qb.offset,
		Lock:    qb.lock,
		Filters: qb.conditions,
	}
}

// Find 执行查询并返回列表
func (qb *QueryBuilder[T]) Find(ctx context.Context) ([]T, error) {
	data, _, err := qb.FindPage(ctx)
	return data, err
}

// FindPage 执行查询，返回当前页数据与总数
func (qb *QueryBuilder[T]) FindPage(ctx context.Context) ([]T, int64, error) {
	result, err := qb.processor.Query(ctx, new(T), qb.GetOptions())
	if err != nil {
		return nil, 0, err
	}
	data, ok := result.Data.([]T)
	if !ok {
		return nil, 0, errors.New("invalid result type")
	}
	return data, result.Total, nil
}

// First 返回第一条记录
func (qb *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	qb.Limit(1)
	result, err := qb.Find(ctx)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, ErrRecordNotFound
	}
	return &result[0], nil
}

// Count 返回匹配的记录总数
func (qb *QueryBuilder[T]) Count(ctx context.Context) (int64, error) {
	result, err := qb.processor.Query(ctx, new(T), &QueryOption{Filters: qb.conditions})
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Delete 按当前条件删除
func (qb *QueryBuilder[T]) Delete(ctx context.Context) error {
	return qb.processor.DeleteByOption(ctx, new(T), qb.GetOptions())
}
