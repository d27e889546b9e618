package protocol

import "fmt"

// Semantic client-side errors (spec.md §7): a peer answered but not
// with a reply the client's validation rules accept.
var (
	InvalidNoOpResponse  = fmt.Errorf("protocol: invalid noop response")
	InvalidWriteResponse = fmt.Errorf("protocol: invalid write response")
)

// A non-Successful wire.Status is surfaced to the client's caller
// verbatim (spec.md §7): wire.Status already implements error, via its
// String()-backed Error() method, so handlers simply `return status`
// without an extra wrapper type.
