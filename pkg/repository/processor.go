package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"xorm.io/xorm"
)

// XormProcessor 基于 xorm 的 ORMProcessor 实现。
// 所有写操作都在事务中执行，读操作复用上下文中的事务会话（若有）。
type XormProcessor struct {
	engine *xorm.Engine
}

func NewXormProcessor(engine *xorm.Engine) *XormProcessor {
	return &XormProcessor{engine: engine}
}

// sessionFrom 优先返回上下文中的事务会话，否则新建会话
func (p *XormProcessor) sessionFrom(ctx context.Context) *xorm.Session {
	if session, ok := ctx.Value(TransactionKeyInstance).(*xorm.Session); ok && session != nil {
		return session
	}
	return p.engine.NewSession()
}

// traced 执行会话操作并把最后一条 SQL 记录到当前 span
func (p *XormProcessor) traced(ctx context.Context, session *xorm.Session, fn func(*xorm.Session) (any, error)) (any, error) {
	start := time.Now()
	result, err := fn(session)
	sql, args := session.LastSQL()
	info := map[string]any{
		"sql":      sql,
		"duration": time.Since(start),
	}
	if len(args) > 0 {
		info["args"] = args
	}
	recordDbEvent(ctx, info)
	return result, err
}

// execInTx 在事务中执行 fn：已有事务则加入，否则开启新事务
func (p *XormProcessor) execInTx(ctx context.Context, fn func(*xorm.Session) (any, error)) (any, error) {
	if session, ok := ctx.Value(TransactionKeyInstance).(*xorm.Session); ok && session != nil {
		return p.traced(ctx, session, fn)
	}
	return p.Transaction(ctx, func(txCtx context.Context) (any, error) {
		return p.traced(txCtx, p.sessionFrom(txCtx), fn)
	})
}

func (p *XormProcessor) Create(ctx context.Context, model any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		return session.Insert(model)
	})
	return err
}

func (p *XormProcessor) Update(ctx context.Context, model any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		pk, err := primaryKey(model)
		if err != nil {
			return nil, err
		}
		// AllCols 让零值字段（false/0/""）也进入 SET 子句，
		// xorm 默认会跳过零值，导致清空字段的更新丢失
		return session.ID(pk).AllCols().Update(model)
	})
	return err
}

func (p *XormProcessor) Delete(ctx context.Context, model any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		return session.Delete(model)
	})
	return err
}

// UpdateByOption 按查询选项更新
func (p *XormProcessor) UpdateByOption(ctx context.Context, model any, opts *QueryOption) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		session = applyFilters(session, opts.Filters)
		if opts.OrderBy != "" {
			session = session.OrderBy(opts.OrderBy)
		}
		return session.Update(model)
	})
	return err
}

// DeleteByOption 按查询选项删除
func (p *XormProcessor) DeleteByOption(ctx context.Context, model any, opts *QueryOption) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		session = applyFilters(session, opts.Filters)
		if opts.OrderBy != "" {
			session = session.OrderBy(opts.OrderBy)
		}
		return session.Delete(model)
	})
	return err
}

// Query 查询记录和总数。Data 为元素类型的值切片。
func (p *XormProcessor) Query(ctx context.Context, model any, opts *QueryOption) (*QueryResult, error) {
	session := applyFilters(p.sessionFrom(ctx), opts.Filters)
	if opts.OrderBy != "" {
		session = session.OrderBy(opts.OrderBy)
	}
	if opts.Limit > 0 {
		session = session.Limit(opts.Limit, opts.Offset)
	}
	if opts.Lock != "" {
		session = session.ForUpdate()
	}

	slicePtr := reflect.New(reflect.SliceOf(reflect.TypeOf(model).Elem()))
	if _, err := p.traced(ctx, session, func(session *xorm.Session) (any, error) {
		return nil, session.Find(slicePtr.Interface())
	}); err != nil {
		return nil, err
	}

	// Find 消费了会话条件，计数前需要重新应用
	countSession := applyFilters(session, opts.Filters)
	total, err := p.traced(ctx, countSession, func(session *xorm.Session) (any, error) {
		return session.Count(model)
	})
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Data:  slicePtr.Elem().Interface(),
		Total: total.(int64),
	}, nil
}

func (p *XormProcessor) BatchCreate(ctx context.Context, models []any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		for _, model := range models {
			if _, err := session.Insert(model); err != nil {
				return nil, err
			}
		}
		return len(models), nil
	})
	return err
}

func (p *XormProcessor) BatchUpdate(ctx context.Context, models []any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		for _, model := range models {
			pk, err := primaryKey(model)
			if err != nil {
				return nil, err
			}
			if _, err := session.ID(pk).AllCols().Update(model); err != nil {
				return nil, err
			}
		}
		return len(models), nil
	})
	return err
}

func (p *XormProcessor) BatchDelete(ctx context.Context, models []any) error {
	_, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		for _, model := range models {
			if _, err := session.Delete(model); err != nil {
				return nil, err
			}
		}
		return len(models), nil
	})
	return err
}

// Exec 执行原生 SQL，返回受影响行数
func (p *XormProcessor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	count, err := p.execInTx(ctx, func(session *xorm.Session) (any, error) {
		sqlOrArgs := append([]any{sql}, args...)
		result, err := session.Exec(sqlOrArgs...)
		if err != nil {
			return int64(0), err
		}
		return result.RowsAffected()
	})
	if err != nil {
		return 0, err
	}
	return count.(int64), nil
}

// QueryRow 原生 SQL 查询单行
func (p *XormProcessor) QueryRow(ctx context.Context, sql string, args ...any) (map[string]any, error) {
	rows, err := p.rawQuery(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	result := make(map[string]any, len(rows[0]))
	for k, v := range rows[0] {
		result[k] = string(v)
	}
	return result, nil
}

// QueryRows 原生 SQL 查询多行
func (p *XormProcessor) QueryRows(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := p.rawQuery(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	result := make([]map[string]any, len(rows))
	for i, row := range rows {
		result[i] = make(map[string]any, len(row))
		for k, v := range row {
			result[i][k] = v
		}
	}
	return result, nil
}

func (p *XormProcessor) rawQuery(ctx context.Context, sql string, args ...any) ([]map[string][]byte, error) {
	sqlOrArgs := append([]any{sql}, args...)
	data, err := p.traced(ctx, p.sessionFrom(ctx), func(session *xorm.Session) (any, error) {
		return session.Query(sqlOrArgs...)
	})
	if err != nil {
		return nil, err
	}
	rows, _ := data.([]map[string][]byte)
	return rows, nil
}

// primaryKey 返回模型主键字段的值，约定 xorm 标签含 pk
func primaryKey(model any) (any, error) {
	t := reflect.TypeOf(model).Elem()
	v := reflect.ValueOf(model).Elem()
	for i := 0; i < t.NumField(); i++ {
		if !strings.Contains(t.Field(i).Tag.Get("xorm"), "pk") {
			continue
		}
		value := v.Field(i)
		if !value.IsValid() || (value.Kind() == reflect.Ptr && value.IsNil()) {
			return nil, errors.New("model must have a valid primary key field")
		}
		return value.Interface(), nil
	}
	return nil, errors.New("no primary key found in model")
}

func applyFilters(session *xorm.Session, filters []Condition) *xorm.Session {
	for _, filter := range filters {
		session = applyCondition(session, filter)
	}
	return session
}

func applyCondition(session *xorm.Session, cond Condition) *xorm.Session {
	switch cond.Op {
	case OpIn, OpNotIn:
		values, ok := toAnySlice(cond.Value)
		if !ok {
			logger.Errorf(context.Background(), "invalid value type for IN condition: %T", cond.Value)
			return session
		}
		if cond.Op == OpIn {
			return session.In(cond.Field, values...)
		}
		return session.NotIn(cond.Field, values...)
	case OpEq, OpAnd:
		return session.Where(cond.Field+" = ?", cond.Value)
	case OpOr:
		return session.Or(cond.Field+" = ?", cond.Value)
	case OpNe:
		return session.Where(cond.Field+" != ?", cond.Value)
	case OpGt:
		return session.Where(cond.Field+" > ?", cond.Value)
	case OpLt:
		return session.Where(cond.Field+" < ?", cond.Value)
	case OpGe:
		return session.Where(cond.Field+" >= ?", cond.Value)
	case OpLe:
		return session.Where(cond.Field+" <= ?", cond.Value)
	case OpLike:
		return session.Where(cond.Field+" LIKE ?", fmt.Sprintf("%%%v%%", cond.Value))
	case OpStartsWith:
		return session.Where(cond.Field+" LIKE ?", fmt.Sprintf("%v%%", cond.Value))
	case OpEndsWith:
		return session.Where(cond.Field+" LIKE ?", fmt.Sprintf("%%%v", cond.Value))
	case OpNull:
		return session.Where(cond.Field + " IS NULL")
	case OpNotNull:
		return session.Where(cond.Field + " IS NOT NULL")
	default:
		return session
	}
}

func toAnySlice(value any) ([]any, bool) {
	if values, ok := value.([]any); ok {
		return values, true
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice {
		return nil, false
	}
	values := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		values[i] = v.Index(i).Interface()
	}
	return values, true
}

// BuildFiltersFromModel 提取模型非零字段作为等值查询条件。
// 列名和操作符取自 xorm 标签，标签可用 op= 指定操作符。
func (p *XormProcessor) BuildFiltersFromModel(model any) []Condition {
	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	var filters []Condition
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		value := val.Field(i)
		if value.IsZero() || (value.Kind() == reflect.Ptr && value.IsNil()) {
			continue
		}
		if value.Kind() == reflect.Struct {
			continue
		}
		column, op := parseColumnTag(field.Tag.Get("xorm"))
		if column == "" {
			continue
		}
		filters = append(filters, Condition{Field: column, Op: op, Value: value.Interface()})
	}
	return filters
}

// parseColumnTag 从 xorm 标签中取列名（引号内优先）和 op= 操作符
func parseColumnTag(tag string) (string, Op) {
	if tag == "" {
		return "", OpEq
	}

	var column string
	if start := strings.IndexAny(tag, "'`"); start != -1 {
		quote := tag[start]
		if end := strings.IndexByte(tag[start+1:], quote); end != -1 {
			column = tag[start+1 : start+1+end]
		}
	}
	if column == "" {
		parts := strings.FieldsFunc(tag, func(r rune) bool {
			return r == ' ' || r == '`' || r == '\''
		})
		if len(parts) > 0 {
			column = parts[0]
		}
	}

	op := OpEq
	for _, part := range strings.Fields(tag) {
		if value, ok := strings.CutPrefix(strings.Trim(part, "'`"), "op="); ok && value != "" {
			op = Op(value)
			break
		}
	}
	return column, op
}

// Begin 开启事务，事务会话写入返回的上下文
func (p *XormProcessor) Begin(ctx context.Context) (context.Context, error) {
	session := p.engine.NewSession()
	if err := session.Begin(); err != nil {
		session.Close()
		return ctx, err
	}
	return context.WithValue(ctx, TransactionKeyInstance, session), nil
}

func (p *XormProcessor) Commit(ctx context.Context) error {
	session, ok := ctx.Value(TransactionKeyInstance).(*xorm.Session)
	if !ok || session == nil {
		return errors.New("transaction session not found in context")
	}
	defer session.Close()
	return session.Commit()
}

func (p *XormProcessor) Rollback(ctx context.Context) error {
	session, ok := ctx.Value(TransactionKeyInstance).(*xorm.Session)
	if !ok || session == nil {
		return errors.New("transaction session not found in context")
	}
	defer session.Close()
	return session.Rollback()
}

// Transaction 在事务中执行 fn，出错或 panic 时回滚
func (p *XormProcessor) Transaction(ctx context.Context, fn TransactionFunc) (any, error) {
	txCtx, err := p.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = p.Rollback(txCtx)
			panic(r)
		}
	}()

	result, err := fn(txCtx)
	if err != nil {
		if rollbackErr := p.Rollback(txCtx); rollbackErr != nil {
			logger.Errorf(ctx, "rollback failed: %v", rollbackErr)
		}
		return nil, err
	}
	if err := p.Commit(txCtx); err != nil {
		return nil, err
	}
	return result, nil
}
