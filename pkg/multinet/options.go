package multinet

import (
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TablesOptions filters the table listing. A zero value lists every table.
type TablesOptions struct {
	Type TableType
}

// Validate checks the table type filter.
func (o TablesOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.In(TableTypeAll, TableTypeNode, TableTypeEdge)),
	)
}

// Values encodes the options as query parameters, omitting unset fields.
func (o TablesOptions) Values() url.Values {
	v := url.Values{}
	if o.Type != "" {
		v.Set("type", string(o.Type))
	}
	return v
}

// OffsetLimit pages through rows, nodes, or edges. Nil fields are not sent and
// the server applies its own defaults.
type OffsetLimit struct {
	Offset *int
	Limit  *int
}

// Page returns OffsetLimit with both fields set.
func Page(offset, limit int) OffsetLimit {
	return OffsetLimit{Offset: &offset, Limit: &limit}
}

// Validate checks that the paging bounds are non-negative.
func (o OffsetLimit) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Offset, validation.Min(0)),
		validation.Field(&o.Limit, validation.Min(0)),
	)
}

// Values encodes the options as query parameters, omitting unset fields.
func (o OffsetLimit) Values() url.Values {
	v := url.Values{}
	o.encode(v)
	return v
}

func (o OffsetLimit) encode(v url.Values) {
	if o.Offset != nil {
		v.Set("offset", strconv.Itoa(*o.Offset))
	}
	if o.Limit != nil {
		v.Set("limit", strconv.Itoa(*o.Limit))
	}
}

// EdgesOptions pages and filters the edges attached to a node.
type EdgesOptions struct {
	OffsetLimit
	Direction Direction
}

// Validate checks paging bounds and the direction filter.
func (o EdgesOptions) Validate() error {
	if err := o.OffsetLimit.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&o,
		validation.Field(&o.Direction, validation.In(DirectionAll, DirectionIncoming, DirectionOutgoing)),
	)
}

// Values encodes the options as query parameters, omitting unset fields.
func (o EdgesOptions) Values() url.Values {
	v := url.Values{}
	o.OffsetLimit.encode(v)
	if o.Direction != "" {
		v.Set("direction", string(o.Direction))
	}
	return v
}

// CreateGraphOptions names the tables a new graph is built from.
type CreateGraphOptions struct {
	NodeTables []string
	EdgeTable  string
}

// Validate checks that both the node and edge tables are given.
func (o CreateGraphOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.NodeTables, validation.Required, validation.Each(validation.Required)),
		validation.Field(&o.EdgeTable, validation.Required),
	)
}

type createGraphBody struct {
	NodeTables []string `json:"node_tables"`
	EdgeTable  string   `json:"edge_table"`
}

func invalidOption(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidOption, err)
}
