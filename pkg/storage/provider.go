package storage

import "github.com/google/wire"

// ProviderSet 提供存储相关的依赖
var ProviderSet = wire.NewSet(NewStorage)
