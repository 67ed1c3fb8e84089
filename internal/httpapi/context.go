package httpapi

import (
	"context"
	"time"
)

// serverBaseCtx is canceled by the process on shutdown. In-flight /infer
// calls derive from it so a draining node stops routing work.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level context. nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// inferContext derives the context an /infer call runs under: canceled when
// the client goes away, when the server drains, or after timeout (if > 0).
func inferContext(reqCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(reqCtx)
	stop := context.AfterFunc(serverBaseCtx, cancel)
	release := func() {
		stop()
		cancel()
	}
	if timeout <= 0 {
		return ctx, release
	}
	tctx, tcancel := context.WithTimeout(ctx, timeout)
	return tctx, func() {
		tcancel()
		release()
	}
}

// draining reports whether the request's outcome no longer has a reader.
func draining(reqCtx context.Context) bool {
	return reqCtx.Err() != nil || serverBaseCtx.Err() != nil
}
