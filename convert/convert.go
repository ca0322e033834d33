package convert

import (
	"fmt"

	"github.com/kbukum/restclient/entity"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/httpclient"
)

// Attach resolves the response body through reg and attaches the entity.
// A response whose body could not be read is left without an entity.
func Attach(resp *httpclient.Response, reg *entity.Registry) error {
	if resp == nil {
		return errors.InvalidInput("response", "must not be nil")
	}
	if !resp.BodyRead() || resp.Entity() != nil {
		return nil
	}
	e, err := reg.Resolve(resp.ContentType(), resp.Body)
	if err != nil {
		return err
	}
	return resp.AttachEntity(e)
}

// StatusCode returns the status code without reading the entity. It works
// for responses whose body could not be read.
func StatusCode(resp *httpclient.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// To converts the response entity into a T after the status check.
//
// string targets receive ReadAsText, []byte targets the raw bytes and
// entity.Entity targets the entity itself, whatever its kind. Any other T
// is handed to Entity.Decode.
func To[T any](resp *httpclient.Response, policy StatusPolicy) (T, error) {
	var out T
	target := entity.TypeName[T]()

	e, err := checked(resp, policy, target)
	if err != nil {
		return out, err
	}

	switch p := any(&out).(type) {
	case *string:
		*p = e.ReadAsText()
	case *[]byte:
		*p = e.Bytes()
	case *entity.Entity:
		*p = e
	default:
		if err := e.Decode(&out); err != nil {
			var zero T
			return zero, err
		}
	}
	return out, nil
}

// ToList converts the whole response entity into an ordered []T in one
// pass. The result is never nil on success.
func ToList[T any](resp *httpclient.Response, policy StatusPolicy) ([]T, error) {
	e, err := checked(resp, policy, "[]"+entity.TypeName[T]())
	if err != nil {
		return nil, err
	}
	return entity.DecodeList[T](e)
}

// checked applies the status policy and returns the attached entity.
func checked(resp *httpclient.Response, policy StatusPolicy, target string) (entity.Entity, error) {
	if resp == nil {
		return nil, errors.InvalidInput("response", "must not be nil")
	}
	if err := policy.Check(resp.StatusCode); err != nil {
		return nil, err
	}
	e := resp.Entity()
	if e != nil {
		return e, nil
	}
	if resp.BodyErr != nil {
		if errors.IsTransport(resp.BodyErr) {
			return nil, resp.BodyErr
		}
		return nil, errors.ConnectionFailed(resp.BodyErr)
	}
	return nil, errors.ConversionFailed(target, fmt.Errorf("response has no entity"))
}
