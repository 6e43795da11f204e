package params

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page 分页参数，非法取值会被收敛到合法区间而不是报错
type Page struct {
	Page     int `query:"page" json:"page"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

// Normalize 返回收敛后的页码与页大小：
// 页码最小为 1，页大小限制在 [1,100]，未指定时为 20
func (p Page) Normalize() (page, pageSize int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	pageSize = p.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset 返回收敛后的查询偏移量
func (p Page) Offset() int {
	page, pageSize := p.Normalize()
	return (page - 1) * pageSize
}

// Limit 返回收敛后的查询条数
func (p Page) Limit() int {
	_, pageSize := p.Normalize()
	return pageSize
}
