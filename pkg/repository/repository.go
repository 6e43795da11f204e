package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/ettle/strcase"
	"github.com/mitchellh/mapstructure"
)

// Repository 泛型仓储接口，Find 系列按模型非零字段构建条件
type Repository[T any] interface {
	TransactionExecutor
	Create(ctx context.Context, model *T) error
	Update(ctx context.Context, model *T) error
	Delete(ctx context.Context, model *T) error
	DeleteByID(ctx context.Context, id any) error
	DeleteByOption(ctx context.Context, opts *QueryOption) error
	UpdateByOption(ctx context.Context, model any, opts *QueryOption) error
	Find(ctx context.Context, model *T) (*T, error)
	FindByID(ctx context.Context, id any) (*T, error)
	FindByKey(ctx context.Context, key string, value any) (*T, error)
	FindAll(ctx context.Context, model *T) ([]T, error)
	FindPage(ctx context.Context, query any, limit, offset int) ([]T, int64, error)
	BatchCreate(ctx context.Context, models []T) error
	BatchUpdate(ctx context.Context, models []T) error
	BatchDelete(ctx context.Context, models []T) error
	QueryBuilder() *QueryBuilder[T]
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) ([]T, error)
	QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error)
}

type GenericRepository[T any] struct {
	processor ORMProcessor
}

func NewRepository[T any](processor ORMProcessor) Repository[T] {
	return &GenericRepository[T]{processor: processor}
}

func (r *GenericRepository[T]) Create(ctx context.Context, model *T) error {
	return r.processor.Create(ctx, model)
}

func (r *GenericRepository[T]) Update(ctx context.Context, model *T) error {
	return r.processor.Update(ctx, model)
}

func (r *GenericRepository[T]) UpdateByOption(ctx context.Context, model any, opts *QueryOption) error {
	return r.processor.UpdateByOption(ctx, model, opts)
}

func (r *GenericRepository[T]) Delete(ctx context.Context, model *T) error {
	return r.processor.Delete(ctx, model)
}

func (r *GenericRepository[T]) DeleteByOption(ctx context.Context, opts *QueryOption) error {
	return r.processor.DeleteByOption(ctx, new(T), opts)
}

// DeleteByID 按主键删除
func (r *GenericRepository[T]) DeleteByID(ctx context.Context, id any) error {
	model := new(T)
	_, idField, err := idFieldOf(model)
	if err != nil {
		return err
	}
	idField.Set(reflect.ValueOf(id))
	return r.processor.Delete(ctx, model)
}

func (r *GenericRepository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	column, _, err := idFieldOf(new(T))
	if err != nil {
		return nil, err
	}
	return r.FindByKey(ctx, column, id)
}

// FindByKey 按单列等值查询，命中多条视为错误
func (r *GenericRepository[T]) FindByKey(ctx context.Context, key string, value any) (*T, error) {
	result, err := r.processor.Query(ctx, new(T), &QueryOption{
		Filters: []Condition{{Field: key, Op: OpEq, Value: value}},
		Limit:   2,
	})
	if err != nil {
		return nil, err
	}
	return singleRecord[T](result)
}

// Find 按模型非零字段查询单条记录
func (r *GenericRepository[T]) Find(ctx context.Context, model *T) (*T, error) {
	if model == nil {
		return nil, errors.New("model cannot be nil")
	}
	result, err := r.processor.Query(ctx, model, &QueryOption{
		Filters: r.processor.BuildFiltersFromModel(model),
		Limit:   2,
	})
	if err != nil {
		return nil, err
	}
	return singleRecord[T](result)
}

func singleRecord[T any](result *QueryResult) (*T, error) {
	data, ok := result.Data.([]T)
	if !ok || len(data) == 0 {
		return nil, ErrRecordNotFound
	}
	if len(data) > 1 {
		return nil, ErrMultipleRecords
	}
	return &data[0], nil
}

// FindAll 按模型非零字段查询全部匹配记录
func (r *GenericRepository[T]) FindAll(ctx context.Context, model *T) ([]T, error) {
	if model == nil {
		return nil, errors.New("model cannot be nil")
	}
	result, err := r.processor.Query(ctx, new(T), &QueryOption{
		Filters: r.processor.BuildFiltersFromModel(model),
	})
	if err != nil {
		return nil, err
	}
	return result.Data.([]T), nil
}

// FindPage 按模型非零字段分页查询
func (r *GenericRepository[T]) FindPage(ctx context.Context, query any, limit, offset int) ([]T, int64, error) {
	if query == nil {
		return nil, 0, errors.New("model cannot be nil")
	}
	result, err := r.processor.Query(ctx, new(T), &QueryOption{
		Filters: r.processor.BuildFiltersFromModel(query),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, 0, err
	}
	data, ok := result.Data.([]T)
	if !ok {
		return nil, 0, errors.New("invalid result type")
	}
	return data, result.Total, nil
}

func (r *GenericRepository[T]) BatchCreate(ctx context.Context, models []T) error {
	return r.processor.BatchCreate(ctx, boxModels(models))
}

func (r *GenericRepository[T]) BatchUpdate(ctx context.Context, models []T) error {
	return r.processor.BatchUpdate(ctx, boxModels(models))
}

func (r *GenericRepository[T]) BatchDelete(ctx context.Context, models []T) error {
	return r.processor.BatchDelete(ctx, boxModels(models))
}

func boxModels[T any](models []T) []any {
	boxed := make([]any, len(models))
	for i := range models {
		boxed[i] = models[i]
	}
	return boxed
}

// QueryBuilder 链式查询构建器
func (r *GenericRepository[T]) QueryBuilder() *QueryBuilder[T] {
	return NewQueryBuilder[T](r.processor)
}

func (r *GenericRepository[T]) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return r.processor.Exec(ctx, sql, args...)
}

// Query 原生 SQL 查询并映射到模型切片
func (r *GenericRepository[T]) Query(ctx context.Context, sql string, args ...any) ([]T, error) {
	rows, err := r.processor.QueryRows(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	var result []T
	for _, row := range rows {
		var item T
		if err := MapToStruct(row, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *GenericRepository[T]) QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return r.processor.QueryRows(ctx, sql, args...)
}

func (r *GenericRepository[T]) Transaction(ctx context.Context, fn TransactionFunc) (any, error) {
	return r.processor.Transaction(ctx, fn)
}

func (r *GenericRepository[T]) Begin(ctx context.Context) (context.Context, error) {
	return r.processor.Begin(ctx)
}

func (r *GenericRepository[T]) Commit(ctx context.Context) error {
	return r.processor.Commit(ctx)
}

func (r *GenericRepository[T]) Rollback(ctx context.Context) error {
	return r.processor.Rollback(ctx)
}

// idFieldOf 定位模型的主键字段，返回列名（snake_case）和字段值。
// 依次尝试 ID、Id、模型名+ID/Id 的命名。
func idFieldOf[T any](model *T) (string, reflect.Value, error) {
	modelName := reflect.TypeOf(model).Elem().Name()
	value := reflect.ValueOf(model).Elem()

	candidates := []string{
		"ID",
		"Id",
		modelName + "ID",
		modelName + "Id",
	}
	for _, name := range candidates {
		if field := value.FieldByName(name); field.IsValid() {
			return strcase.ToSnake(name), field, nil
		}
	}
	return "", reflect.Value{}, fmt.Errorf("model %s does not have an ID field", modelName)
}

// MapToStruct 把查询结果行映射到结构体，按 json 标签匹配列名
func MapToStruct(src map[string]any, dst any) error {
	config := &mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			byteSliceHookFunc(),
		),
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return decoder.Decode(src)
}

// byteSliceHookFunc 把数据库返回的 []byte 转为目标基本类型
func byteSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Slice || f.Elem().Kind() != reflect.Uint8 {
			return data, nil
		}
		str := string(data.([]byte))

		switch t.Kind() {
		case reflect.String:
			return str, nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.ParseInt(str, 10, 64)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.ParseUint(str, 10, 64)
		case reflect.Float32, reflect.Float64:
			return strconv.ParseFloat(str, 64)
		case reflect.Bool:
			return strconv.ParseBool(str)
		case reflect.Struct:
			if t == reflect.TypeOf(time.Time{}) {
				return parseTime(str)
			}
		}
		return data, nil
	}
}

// parseTime 按常见格式解析时间串，最后回退到 unix 秒时间戳
func parseTime(str string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, str); err == nil {
			return t, nil
		}
	}
	if unix, err := strconv.ParseInt(str, 10, 64); err == nil {
		return time.Unix(unix, 0), nil
	}
	return time.Time{}, errors.New("unrecognized time format: " + str)
}
