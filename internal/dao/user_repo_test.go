package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/domain/models"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/repository"
	_ "github.com/LinYanZhi/lyz-vue-vben-admin/pkg/tests"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"xorm.io/xorm"
)

var (
	once       sync.Once
	testEngine *xorm.Engine
)

func TestMain(m *testing.M) {
	setupTestDB()
	code := m.Run()
	if testEngine != nil {
		clearTestDB()
		testEngine.Close()
	}
	os.Exit(code)
}

func setupTestDB() {
	once.Do(func() {
		eng, err := InitDB()
		if err != nil {
			initError = fmt.Errorf("failed to initialize database: %w", err)
			return
		}
		testEngine = eng
		clearTestDB()
	})
}

func clearTestDB() {
	for _, table := range []string{"sys_user", "sys_role", "sys_menu", "sys_dept", "sys_user_role"} {
		testEngine.Exec("DELETE FROM " + table)
	}
}

func newUserRepo() repository.Repository[models.User] {
	return repository.NewRepository[models.User](repository.NewXormProcessor(testEngine))
}

// 事务一致性：提交后数据可见，业务报错后全部回滚
func TestTransactionConsistency(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	userRepo := newUserRepo()
	ctx := context.Background()

	createInTx := func(username string, raiseError bool) error {
		_, err := userRepo.Transaction(ctx, func(txCtx context.Context) (any, error) {
			if err := userRepo.Create(txCtx, &models.User{
				Username: username,
				Email:    username + "@example.com",
			}); err != nil {
				return nil, err
			}
			if raiseError {
				return nil, errors.New("business error")
			}
			return nil, nil
		})
		return err
	}

	t.Run("Commit", func(t *testing.T) {
		clearTestDB()
		require.NoError(t, createInTx("tx-commit", false))

		count, err := userRepo.QueryBuilder().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Rollback", func(t *testing.T) {
		clearTestDB()
		require.Error(t, createInTx("tx-rollback", true))

		count, err := userRepo.QueryBuilder().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "rolled back user must not exist")
	})
}

func TestUserRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	userRepo := newUserRepo()
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		clearTestDB()
		user := &models.User{Username: "zhangsan", Password: "secret", Email: "zhangsan@example.com"}
		require.NoError(t, userRepo.Create(ctx, user))
		require.NotZero(t, user.ID, "auto increment ID expected")

		var created models.User
		has, err := testEngine.ID(user.ID).Get(&created)
		require.NoError(t, err)
		require.True(t, has)
		assert.Equal(t, "zhangsan", created.Username)
	})

	t.Run("QueryBuilderFind", func(t *testing.T) {
		clearTestDB()
		_, err := testEngine.Insert(&models.User{Username: "lisi", Password: "pwd", Email: "lisi@example.com"})
		require.NoError(t, err)

		users, err := userRepo.QueryBuilder().Eq("username", "lisi").Find(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "lisi", users[0].Username)
	})

	t.Run("Update", func(t *testing.T) {
		clearTestDB()
		user := &models.User{Username: "before", Password: "old", Email: "before@example.com"}
		_, err := testEngine.Insert(user)
		require.NoError(t, err)

		require.NoError(t, userRepo.Update(ctx, &models.User{
			ID:       user.ID,
			Username: "after",
			Email:    "after@example.com",
		}))

		var updated models.User
		has, err := testEngine.ID(user.ID).Get(&updated)
		require.NoError(t, err)
		require.True(t, has)
		assert.Equal(t, "after", updated.Username)
		assert.Equal(t, "after@example.com", updated.Email)
	})

	// 零值字段（false/0/""）也必须写入，不能被 ORM 的零值跳过策略吞掉
	t.Run("UpdateOverwritesZeroValues", func(t *testing.T) {
		clearTestDB()
		user := &models.User{
			Username:    "wangwu",
			Password:    "pwd",
			Nickname:    "老王",
			Email:       "wangwu@example.com",
			Status:      true,
			IsSuperuser: true,
		}
		_, err := testEngine.Insert(user)
		require.NoError(t, err)

		disabled := *user
		disabled.Status = false
		disabled.IsSuperuser = false
		disabled.Nickname = ""
		require.NoError(t, userRepo.Update(ctx, &disabled))

		var reloaded models.User
		has, err := testEngine.ID(user.ID).Get(&reloaded)
		require.NoError(t, err)
		require.True(t, has)
		assert.False(t, reloaded.Status, "disabling a user must persist")
		assert.False(t, reloaded.IsSuperuser)
		assert.Empty(t, reloaded.Nickname)
	})

	t.Run("Delete", func(t *testing.T) {
		clearTestDB()
		user := &models.User{Username: "doomed", Password: "pwd", Email: "doomed@example.com"}
		_, err := testEngine.Insert(user)
		require.NoError(t, err)

		require.NoError(t, userRepo.Delete(ctx, &models.User{ID: user.ID}))

		var gone models.User
		has, err := testEngine.ID(user.ID).Get(&gone)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("Count", func(t *testing.T) {
		clearTestDB()
		for i := 0; i < 5; i++ {
			_, err := testEngine.Insert(&models.User{
				Username: fmt.Sprintf("user%d", i),
				Password: "password",
				Email:    fmt.Sprintf("user%d@example.com", i),
			})
			require.NoError(t, err)
		}

		count, err := userRepo.QueryBuilder().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}
