package rest

import (
	"context"

	"github.com/kbukum/restclient/convert"
	"github.com/kbukum/restclient/httpclient"
)

// GetStatusCode performs a GET and returns only the status code. The body
// is never decoded, and a body that failed to read is not an error.
func GetStatusCode(ctx context.Context, c *Client, path string, opts ...RequestOption) (int, error) {
	cl := newCall(path, opts)
	resp, err := c.exchange(ctx, cl.req, nil)
	if err != nil {
		return 0, err
	}
	return convert.StatusCode(resp), nil
}

// Get performs a GET and converts the body into T when the status is 2xx,
// or passes the policy set with WithStatusPolicy.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	cl := newCall(path, opts)
	return get[T](ctx, c, cl)
}

// GetExpect performs a GET and converts the body into T only when the
// status equals expected.
func GetExpect[T any](ctx context.Context, c *Client, path string, expected int, opts ...RequestOption) (T, error) {
	cl := newCall(path, opts)
	cl.policy = convert.Expect(expected)
	return get[T](ctx, c, cl)
}

// GetList performs a GET and converts the whole body into an ordered []T
// when the status is 2xx, or passes the policy set with WithStatusPolicy.
func GetList[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) ([]T, error) {
	cl := newCall(path, opts)
	return getList[T](ctx, c, cl)
}

// GetListExpect performs a GET and converts the whole body into an ordered
// []T only when the status equals expected.
func GetListExpect[T any](ctx context.Context, c *Client, path string, expected int, opts ...RequestOption) ([]T, error) {
	cl := newCall(path, opts)
	cl.policy = convert.Expect(expected)
	return getList[T](ctx, c, cl)
}

// GetWith performs a GET and hands the response, entity attached, to
// handler. No status policy is applied before it runs.
func GetWith[T any](ctx context.Context, c *Client, path string, handler func(resp *httpclient.Response) (T, error), opts ...RequestOption) (T, error) {
	cl := newCall(path, opts)
	var out T
	_, err := c.exchange(ctx, cl.req, func(resp *httpclient.Response) error {
		v, err := handler(resp)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, cl *call) (T, error) {
	var out T
	_, err := c.exchange(ctx, cl.req, func(resp *httpclient.Response) error {
		v, err := convert.To[T](resp, cl.policy)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func getList[T any](ctx context.Context, c *Client, cl *call) ([]T, error) {
	var out []T
	_, err := c.exchange(ctx, cl.req, func(resp *httpclient.Response) error {
		v, err := convert.ToList[T](resp, cl.policy)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
