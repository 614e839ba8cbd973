package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改（版本号或状态不再匹配）
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
