// Package domain 定义领域结构与仓储接口
package domain

import "github.com/inkwells/smart-note-service/pkg/timex"

// User account entity. Password holds the bcrypt hash and is never serialized.
// User 账号实体。Password 保存 bcrypt 哈希，永不序列化。
type User struct {
	UID       int64
	Username  string
	Password  string
	CreatedAt timex.Time
	UpdatedAt timex.Time
}
