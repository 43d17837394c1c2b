// pkg/commitia_err/wrap.go

package commitia_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapWithHint attaches a stack and a user-facing hint to err.
func WrapWithHint(err error, hint string) error {
	return cerr.WithHint(cerr.WithStack(err), hint)
}
