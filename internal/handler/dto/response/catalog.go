package response

import "airaa-jewels/internal/usecase/queries"

type ProductListResponse struct {
	Items      []*queries.ProductListItem `json:"items"`
	NextCursor *string                    `json:"next_cursor,omitempty"`
}

func NewProductListResponse(items []*queries.ProductListItem, next *queries.Cursor) ProductListResponse {
	resp := ProductListResponse{Items: items}
	if resp.Items == nil {
		resp.Items = []*queries.ProductListItem{}
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
