package base

import "github.com/multinet-app/multinet-go/pkg/multinet"

// OffsetLimit converts paging flags to options. Negative values mean the flag
// was not given and the parameter is left out of the request.
func OffsetLimit(offset, limit int) multinet.OffsetLimit {
	var opts multinet.OffsetLimit
	if offset >= 0 {
		opts.Offset = &offset
	}
	if limit >= 0 {
		opts.Limit = &limit
	}
	return opts
}
