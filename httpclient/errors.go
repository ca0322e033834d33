package httpclient

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/kbukum/restclient/errors"
)

// transportError classifies a failed exchange as a timeout or a connection
// failure.
func transportError(ctx context.Context, err error) error {
	if isTimeout(ctx, err) {
		return errors.Timeout(err)
	}
	return errors.ConnectionFailed(err)
}

func isTimeout(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	return errors.HasCode(err, errors.ErrCodeTimeout)
}

// IsConnection reports whether err is a connection or body read failure.
func IsConnection(err error) bool {
	return errors.HasCode(err, errors.ErrCodeConnectionFailed)
}
