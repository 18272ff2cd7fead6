package cli

import (
	"io"
	"time"
)

// Context carries what every estimate command needs. Now is injectable so the
// commands stay deterministic under test.
type Context struct {
	Out      io.Writer
	Location *time.Location
	Now      func() time.Time
}

func (ctx *Context) today() time.Time {
	now := time.Now
	if ctx.Now != nil {
		now = ctx.Now
	}
	return now().In(ctx.location())
}

func (ctx *Context) location() *time.Location {
	if ctx.Location == nil {
		return time.UTC
	}
	return ctx.Location
}

func formatDay(value time.Time) string {
	return value.Format("2006-01-02")
}
