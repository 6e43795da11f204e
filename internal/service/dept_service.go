package service

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DeptService 部门管理服务
type DeptService struct {
	deptRepo repository.Repository[models.Dept]
}

// NewDeptService 创建部门服务实例
func NewDeptService(deptRepo repository.Repository[models.Dept]) *DeptService {
	return &DeptService{deptRepo: deptRepo}
}

// GetDeptList 分页查询部门列表
func (s *DeptService) GetDeptList(ctx context.Context, req *params.GetDeptListRequest) ([]models.Dept, int64, error) {
	qb := s.deptRepo.QueryBuilder()
	if req.Name != "" {
		qb.Like("name", req.Name)
	}
	if req.Leader != "" {
		qb.Like("leader", req.Leader)
	}
	if req.Status != nil {
		qb.Eq("status", *req.Status)
	}

	depts, total, err := qb.OrderBy("sort").
		Limit(req.Limit()).
		Offset(req.Offset()).
		FindPage(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to retrieve departments")
	}
	return depts, total, nil
}

// GetAllDepts 查询全部部门的平铺列表
func (s *DeptService) GetAllDepts(ctx context.Context) ([]models.Dept, error) {
	depts, err := s.deptRepo.QueryBuilder().OrderBy("sort").Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve departments")
	}
	return depts, nil
}

// CreateDept 创建部门，同一父节点下部门名不允许重复
func (s *DeptService) CreateDept(ctx context.Context, req *params.CreateDeptRequest) (*models.Dept, error) {
	if err := s.checkParent(ctx, 0, req.ParentID); err != nil {
		return nil, err
	}

	existing, err := s.deptRepo.QueryBuilder().
		Eq("name", req.Name).
		Eq("parent_id", req.ParentID).
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check department name")
	}
	if len(existing) > 0 {
		return nil, ErrDeptExists
	}

	dept := &models.Dept{
		Name:     req.Name,
		ParentID: req.ParentID,
		Leader:   req.Leader,
		Phone:    req.Phone,
		Email:    req.Email,
		Sort:     req.Sort,
		Status:   true,
	}
	if req.Status != nil {
		dept.Status = *req.Status
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		logger.Error(ctx, "Failed to create department", zap.Error(err), zap.String("name", req.Name))
		return nil, errors.Wrap(err, "failed to create department")
	}
	return dept, nil
}

// UpdateDept 更新部门，只覆盖请求中出现的字段
func (s *DeptService) UpdateDept(ctx context.Context, req *params.UpdateDeptRequest) (*models.Dept, error) {
	dept, err := s.deptRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if req.ParentID != nil && *req.ParentID != dept.ParentID {
		if err := s.checkParent(ctx, dept.ID, *req.ParentID); err != nil {
			return nil, err
		}
		dept.ParentID = *req.ParentID
	}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Leader != nil {
		dept.Leader = *req.Leader
	}
	if req.Phone != nil {
		dept.Phone = *req.Phone
	}
	if req.Email != nil {
		dept.Email = *req.Email
	}
	if req.Sort != nil {
		dept.Sort = *req.Sort
	}
	if req.Status != nil {
		dept.Status = *req.Status
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		logger.Error(ctx, "Failed to update department", zap.Error(err), zap.Uint64("dept_id", req.ID))
		return nil, errors.Wrap(err, "failed to update department")
	}
	return dept, nil
}

// DeleteDepts 批量删除部门，不存在的ID直接跳过
func (s *DeptService) DeleteDepts(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	err := s.deptRepo.QueryBuilder().In("id", ids).Delete(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to delete departments", zap.Error(err), zap.Uint64s("ids", ids))
		return errors.Wrap(err, "failed to delete departments")
	}
	return nil
}

// checkParent 校验父节点：必须存在，且不能形成环
func (s *DeptService) checkParent(ctx context.Context, selfID, parentID uint64) error {
	if parentID == 0 {
		return nil
	}

	// seen 防止存量数据中已有的环让遍历死循环
	seen := map[uint64]bool{}
	current := parentID
	for current != 0 {
		if current == selfID || seen[current] {
			return ErrParentCycle
		}
		seen[current] = true
		parent, err := s.deptRepo.FindByID(ctx, current)
		if err != nil {
			if current == parentID && errors.Is(err, repository.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return errors.Wrap(err, "failed to walk department ancestors")
		}
		current = parent.ParentID
	}
	return nil
}
