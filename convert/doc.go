// Package convert turns a Response carrying an Entity into the value the
// caller asked for.
//
// Every conversion first checks the status code against a StatusPolicy. A
// rejected status is a status mismatch error and the entity is never read.
// Scalars go through To, ordered sequences through ToList:
//
//	user, err := convert.To[User](resp, convert.Successful())
//	users, err := convert.ToList[User](resp, convert.Expect(http.StatusOK))
//
// Conversion is all or nothing: on error the zero value is returned.
package convert
