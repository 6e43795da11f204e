package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/ettle/strcase"
)

// memoryProcessor 内存版 ORMProcessor，供服务层测试使用。
// 行为对齐Xorm处理器的查询语义：按库字段名过滤、排序、分页。
type memoryProcessor struct {
	mu     sync.Mutex
	tables map[string][]reflect.Value
	nextID map[string]uint64

	filterBuilder repository.XormProcessor
}

func newMemoryProcessor() *memoryProcessor {
	return &memoryProcessor{
		tables: make(map[string][]reflect.Value),
		nextID: make(map[string]uint64),
	}
}

func (p *memoryProcessor) tableName(model any) string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// fieldByColumn 按库字段名定位结构体字段
func fieldByColumn(row reflect.Value, column string) (reflect.Value, bool) {
	t := row.Type()
	for i := 0; i < t.NumField(); i++ {
		if strcase.ToSnake(t.Field(i).Name) == column {
			return row.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func (p *memoryProcessor) Create(ctx context.Context, model any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Ptr {
		return errors.New("model must be a pointer")
	}
	row := v.Elem()
	name := p.tableName(model)

	if idField := row.FieldByName("ID"); idField.IsValid() && idField.CanSet() && idField.Uint() == 0 {
		p.nextID[name]++
		idField.SetUint(p.nextID[name])
	}

	stored := reflect.New(row.Type()).Elem()
	stored.Set(row)
	p.tables[name] = append(p.tables[name], stored)
	return nil
}

func (p *memoryProcessor) Update(ctx context.Context, model any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	id := v.FieldByName("ID")
	if !id.IsValid() {
		return errors.New("model does not have an ID field")
	}
	name := p.tableName(model)
	for i, row := range p.tables[name] {
		if row.FieldByName("ID").Uint() == id.Uint() {
			stored := reflect.New(v.Type()).Elem()
			stored.Set(v)
			p.tables[name][i] = stored
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (p *memoryProcessor) UpdateByOption(ctx context.Context, model any, opts *repository.QueryOption) error {
	return errors.New("not supported in memory processor")
}

func (p *memoryProcessor) Delete(ctx context.Context, model any) error {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	id := v.FieldByName("ID")
	if !id.IsValid() {
		return errors.New("model does not have an ID field")
	}
	return p.DeleteByOption(ctx, model, &repository.QueryOption{
		Filters: []repository.Condition{{Field: "id", Op: repository.OpEq, Value: id.Interface()}},
	})
}

func (p *memoryProcessor) DeleteByOption(ctx context.Context, model any, opts *repository.QueryOption) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := p.tableName(model)
	kept := p.tables[name][:0]
	for _, row := range p.tables[name] {
		if !matchFilters(row, opts.Filters) {
			kept = append(kept, row)
		}
	}
	p.tables[name] = kept
	return nil
}

func (p *memoryProcessor) Query(ctx context.Context, model any, opts *repository.QueryOption) (*repository.QueryResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := p.tableName(model)
	var matched []reflect.Value
	for _, row := range p.tables[name] {
		if opts == nil || matchFilters(row, opts.Filters) {
			matched = append(matched, row)
		}
	}

	if opts != nil && opts.OrderBy != "" {
		column := strings.TrimSuffix(strings.TrimSpace(opts.OrderBy), " asc")
		sort.SliceStable(matched, func(i, j int) bool {
			a, okA := fieldByColumn(matched[i], column)
			b, okB := fieldByColumn(matched[j], column)
			if !okA || !okB {
				return false
			}
			return compareLess(a, b)
		})
	}

	total := int64(len(matched))
	if opts != nil && opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[opts.Offset:]
		}
	}
	if opts != nil && opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}

	elemType := reflect.TypeOf(model)
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	result := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(matched))
	for _, row := range matched {
		result = reflect.Append(result, row)
	}
	return &repository.QueryResult{Data: result.Interface(), Total: total}, nil
}

func compareLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint()
	case reflect.String:
		return a.String() < b.String()
	default:
		return false
	}
}

func matchFilters(row reflect.Value, filters []repository.Condition) bool {
	for _, cond := range filters {
		field, ok := fieldByColumn(row, cond.Field)
		if !ok {
			return false
		}
		if !matchCondition(field, cond) {
			return false
		}
	}
	return true
}

func matchCondition(field reflect.Value, cond repository.Condition) bool {
	switch cond.Op {
	case repository.OpEq, repository.OpAnd:
		return equalValues(field.Interface(), cond.Value)
	case repository.OpNe:
		return !equalValues(field.Interface(), cond.Value)
	case repository.OpLike, repository.OpStartsWith, repository.OpEndsWith:
		s, okS := field.Interface().(string)
		sub := fmt.Sprintf("%v", cond.Value)
		if !okS {
			return false
		}
		switch cond.Op {
		case repository.OpStartsWith:
			return strings.HasPrefix(s, sub)
		case repository.OpEndsWith:
			return strings.HasSuffix(s, sub)
		default:
			return strings.Contains(s, sub)
		}
	case repository.OpGt, repository.OpLt, repository.OpGe, repository.OpLe:
		av, bv := reflect.ValueOf(field.Interface()), reflect.ValueOf(cond.Value)
		if !isInteger(av) || !isInteger(bv) {
			return false
		}
		a, b := integerOf(av), integerOf(bv)
		switch cond.Op {
		case repository.OpGt:
			return a > b
		case repository.OpLt:
			return a < b
		case repository.OpGe:
			return a >= b
		default:
			return a <= b
		}
	case repository.OpIn:
		values := reflect.ValueOf(cond.Value)
		if values.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < values.Len(); i++ {
			if equalValues(field.Interface(), values.Index(i).Interface()) {
				return true
			}
		}
		return false
	case repository.OpNotIn:
		values := reflect.ValueOf(cond.Value)
		if values.Kind() != reflect.Slice {
			return true
		}
		for i := 0; i < values.Len(); i++ {
			if equalValues(field.Interface(), values.Index(i).Interface()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// equalValues 比较字段值与条件值，数值类型做宽松比较
func equalValues(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if isInteger(av) && isInteger(bv) {
		return integerOf(av) == integerOf(bv)
	}
	return false
}

func isInteger(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func integerOf(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

func (p *memoryProcessor) BatchCreate(ctx context.Context, models []any) error {
	for _, m := range models {
		v := reflect.ValueOf(m)
		if v.Kind() != reflect.Ptr {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			m = ptr.Interface()
		}
		if err := p.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *memoryProcessor) BatchUpdate(ctx context.Context, models []any) error {
	for _, m := range models {
		if err := p.Update(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *memoryProcessor) BatchDelete(ctx context.Context, models []any) error {
	for _, m := range models {
		if err := p.Delete(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *memoryProcessor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return 0, errors.New("raw SQL not supported in memory processor")
}

func (p *memoryProcessor) QueryRow(ctx context.Context, sql string, args ...any) (map[string]any, error) {
	return nil, errors.New("raw SQL not supported in memory processor")
}

func (p *memoryProcessor) QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return nil, errors.New("raw SQL not supported in memory processor")
}

func (p *memoryProcessor) BuildFiltersFromModel(model any) []repository.Condition {
	return p.filterBuilder.BuildFiltersFromModel(model)
}

func (p *memoryProcessor) Begin(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func (p *memoryProcessor) Commit(ctx context.Context) error { return nil }

func (p *memoryProcessor) Rollback(ctx context.Context) error { return nil }

func (p *memoryProcessor) Transaction(ctx context.Context, fn repository.TransactionFunc) (any, error) {
	return fn(ctx)
}
