package response

import "airaa-jewels/internal/usecase/queries"

type OrderListResponse struct {
	Items      []*queries.OrderListItem `json:"items"`
	NextCursor *string                  `json:"next_cursor,omitempty"`
}

func NewOrderListResponse(items []*queries.OrderListItem, next *queries.Cursor) OrderListResponse {
	resp := OrderListResponse{Items: items}
	if resp.Items == nil {
		resp.Items = []*queries.OrderListItem{}
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
