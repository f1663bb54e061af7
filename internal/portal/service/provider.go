package service

import (
	"github.com/google/wire"
)

// ProviderSet 提供业务层相关的依赖
var ProviderSet = wire.NewSet(
	NewServices,
)
