package ctx

import (
	"context"

	"go.uber.org/zap"
)

/**
 * @author: aperture
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	Ctx context.Context
	Log *zap.SugaredLogger
}

func NewContext(ctx context.Context, log *zap.SugaredLogger) *Context {
	return &Context{
		Ctx: ctx,
		Log: log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

// ContextIns 返回底层 context.Context 实例
func (c *Context) ContextIns() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
