package crypter

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost 是 bcrypt 的默认计算强度
const DefaultCost = bcrypt.DefaultCost

type BcryptCrypter struct {
	cost int
}

// NewBcryptCrypter 创建新的 bcrypt 密码加密器
func NewBcryptCrypter(cost int) *BcryptCrypter {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptCrypter{cost: cost}
}

// Encrypt 生成密码的 bcrypt 哈希，每次调用产生不同的盐
func (c *BcryptCrypter) Encrypt(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		// 只有 cost 非法或密码超长才会出错，构造函数已保证 cost 合法
		panic(err)
	}
	return string(hash)
}

// Verify 验证明文密码是否匹配哈希值
func (c *BcryptCrypter) Verify(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
