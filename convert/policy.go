package convert

import (
	"fmt"

	"github.com/kbukum/restclient/errors"
)

// StatusPolicy decides which status codes may be converted. The zero value
// accepts any 2xx code.
type StatusPolicy struct {
	name     string
	accept   func(code int) bool
	expected int
	exact    bool
}

// Successful accepts any 2xx status code.
func Successful() StatusPolicy {
	return Predicate("successful", func(code int) bool { return code >= 200 && code < 300 })
}

// Predicate accepts the codes fn returns true for. name appears in
// mismatch errors.
func Predicate(name string, fn func(code int) bool) StatusPolicy {
	if fn == nil {
		panic("convert: nil status predicate")
	}
	return StatusPolicy{name: name, accept: fn}
}

// Expect accepts exactly one status code.
func Expect(code int) StatusPolicy {
	return StatusPolicy{
		name:     fmt.Sprintf("exactly %d", code),
		accept:   func(actual int) bool { return actual == code },
		expected: code,
		exact:    true,
	}
}

// Check returns nil when code is accepted and a status mismatch error
// otherwise. Exact policies report the expected code as well.
func (p StatusPolicy) Check(code int) error {
	if p.accept == nil {
		return Successful().Check(code)
	}
	if p.accept(code) {
		return nil
	}
	if p.exact {
		return errors.UnexpectedStatus(p.expected, code)
	}
	return errors.StatusMismatch(code, p.name)
}

// Expected returns the exact code the policy wants. ok is false for
// predicate policies.
func (p StatusPolicy) Expected() (code int, ok bool) {
	return p.expected, p.exact
}

// String returns the policy name.
func (p StatusPolicy) String() string {
	if p.accept == nil {
		return "successful"
	}
	return p.name
}
