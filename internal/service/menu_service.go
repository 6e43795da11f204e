package service

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/params"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/vo"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MenuService 菜单管理服务
type MenuService struct {
	menuRepo repository.Repository[models.Menu]
}

// NewMenuService 创建菜单服务实例
func NewMenuService(menuRepo repository.Repository[models.Menu]) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// GetMenuTree 查询全部启用菜单并组装为树
func (s *MenuService) GetMenuTree(ctx context.Context) ([]*vo.MenuTree, error) {
	menus, err := s.activeMenus(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus, 0), nil
}

// GetActiveMenus 查询全部启用菜单的平铺列表
func (s *MenuService) GetActiveMenus(ctx context.Context) ([]models.Menu, error) {
	return s.activeMenus(ctx)
}

func (s *MenuService) activeMenus(ctx context.Context) ([]models.Menu, error) {
	menus, err := s.menuRepo.QueryBuilder().
		Eq("status", true).
		OrderBy("sort").
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve menus")
	}
	return menus, nil
}

// BuildMenuTree 将平铺的菜单列表组装成树。
// 先按 parent_id 分组一次，再递归组装，整体线性复杂度；
// 同级顺序沿用输入顺序，叶子节点的 children 为 nil。
func BuildMenuTree(menus []models.Menu, parentID uint64) []*vo.MenuTree {
	grouped := make(map[uint64][]*models.Menu, len(menus))
	for i := range menus {
		grouped[menus[i].ParentID] = append(grouped[menus[i].ParentID], &menus[i])
	}
	tree := buildSubTree(grouped, parentID)
	if tree == nil {
		// 顶层保持空数组而不是 null，叶子的 children 仍为 null
		tree = []*vo.MenuTree{}
	}
	return tree
}

func buildSubTree(grouped map[uint64][]*models.Menu, parentID uint64) []*vo.MenuTree {
	children := grouped[parentID]
	if len(children) == 0 {
		return nil
	}

	tree := make([]*vo.MenuTree, 0, len(children))
	for _, menu := range children {
		tree = append(tree, &vo.MenuTree{
			ID:         menu.ID,
			Name:       menu.Name,
			Path:       menu.Path,
			Component:  menu.Component,
			Redirect:   menu.Redirect,
			ParentID:   menu.ParentID,
			Type:       menu.Type,
			Permission: menu.Permission,
			Icon:       menu.Icon,
			Sort:       menu.Sort,
			Status:     menu.Status,
			IsVisible:  menu.IsVisible,
			Children:   buildSubTree(grouped, menu.ID),
		})
	}
	return tree
}

// GetMenuList 分页查询菜单列表
func (s *MenuService) GetMenuList(ctx context.Context, req *params.GetMenuListRequest) ([]models.Menu, int64, error) {
	qb := s.menuRepo.QueryBuilder()
	if req.Name != "" {
		qb.Like("name", req.Name)
	}
	if req.Path != "" {
		qb.Like("path", req.Path)
	}
	if req.Type != nil {
		qb.Eq("type", *req.Type)
	}
	if req.ParentID > 0 {
		qb.Eq("parent_id", req.ParentID)
	}
	if req.Status != nil {
		qb.Eq("status", *req.Status)
	}

	menus, total, err := qb.OrderBy("sort").
		Limit(req.Limit()).
		Offset(req.Offset()).
		FindPage(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to retrieve menus")
	}
	return menus, total, nil
}

// CreateMenu 创建菜单，同一父节点下菜单名不允许重复
func (s *MenuService) CreateMenu(ctx context.Context, req *params.CreateMenuRequest) (*models.Menu, error) {
	if err := s.checkParent(ctx, 0, req.ParentID); err != nil {
		return nil, err
	}

	existing, err := s.menuRepo.QueryBuilder().
		Eq("name", req.Name).
		Eq("parent_id", req.ParentID).
		Find(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check menu name")
	}
	if len(existing) > 0 {
		return nil, ErrMenuExists
	}

	menu := &models.Menu{
		Name:       req.Name,
		Path:       req.Path,
		Component:  req.Component,
		Redirect:   req.Redirect,
		ParentID:   req.ParentID,
		Type:       req.Type,
		Permission: req.Permission,
		Icon:       req.Icon,
		Sort:       req.Sort,
		Status:     true,
		IsVisible:  true,
	}
	if req.Status != nil {
		menu.Status = *req.Status
	}
	if req.IsVisible != nil {
		menu.IsVisible = *req.IsVisible
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		logger.Error(ctx, "Failed to create menu", zap.Error(err), zap.String("name", req.Name))
		return nil, errors.Wrap(err, "failed to create menu")
	}
	return menu, nil
}

// UpdateMenu 更新菜单，只覆盖请求中出现的字段
func (s *MenuService) UpdateMenu(ctx context.Context, req *params.UpdateMenuRequest) (*models.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if req.ParentID != nil && *req.ParentID != menu.ParentID {
		if err := s.checkParent(ctx, menu.ID, *req.ParentID); err != nil {
			return nil, err
		}
		menu.ParentID = *req.ParentID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Path != nil {
		menu.Path = *req.Path
	}
	if req.Component != nil {
		menu.Component = *req.Component
	}
	if req.Redirect != nil {
		menu.Redirect = *req.Redirect
	}
	if req.Type != nil {
		menu.Type = *req.Type
	}
	if req.Permission != nil {
		menu.Permission = *req.Permission
	}
	if req.Icon != nil {
		menu.Icon = *req.Icon
	}
	if req.Sort != nil {
		menu.Sort = *req.Sort
	}
	if req.Status != nil {
		menu.Status = *req.Status
	}
	if req.IsVisible != nil {
		menu.IsVisible = *req.IsVisible
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		logger.Error(ctx, "Failed to update menu", zap.Error(err), zap.Uint64("menu_id", req.ID))
		return nil, errors.Wrap(err, "failed to update menu")
	}
	return menu, nil
}

// DeleteMenus 批量删除菜单，不存在的ID直接跳过
func (s *MenuService) DeleteMenus(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	err := s.menuRepo.QueryBuilder().In("id", ids).Delete(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to delete menus", zap.Error(err), zap.Uint64s("ids", ids))
		return errors.Wrap(err, "failed to delete menus")
	}
	return nil
}

// checkParent 校验父节点：必须存在，且不能形成环
func (s *MenuService) checkParent(ctx context.Context, selfID, parentID uint64) error {
	if parentID == 0 {
		return nil
	}
	if parentID == selfID {
		return ErrParentCycle
	}

	// 沿父链向上走，遇到自身说明成环；
	// seen 防止存量数据中已有的环让遍历死循环
	seen := map[uint64]bool{}
	current := parentID
	for current != 0 {
		if current == selfID || seen[current] {
			return ErrParentCycle
		}
		seen[current] = true
		parent, err := s.menuRepo.FindByID(ctx, current)
		if err != nil {
			if current == parentID && errors.Is(err, repository.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return errors.Wrap(err, "failed to walk menu ancestors")
		}
		current = parent.ParentID
	}
	return nil
}
