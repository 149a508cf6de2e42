package http

import (
	"ordering/internal/core/domain/model/kernel"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID kernel.UUID `json:"id"`
}

type OrderLineRequest struct {
	ItemID string `json:"itemId"`
	Count  int    `json:"count"`
}

// PlaceOrderRequest takes either a single item with count or a list of lines.
type PlaceOrderRequest struct {
	MemberID string             `json:"memberId"`
	ItemID   string             `json:"itemId"`
	Count    int                `json:"count"`
	Lines    []OrderLineRequest `json:"lines"`
}

type RegisterMemberRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

type AddItemRequest struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Kind          string `json:"kind"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Artist        string `json:"artist"`
	Etc           string `json:"etc"`
	Director      string `json:"director"`
	Actor         string `json:"actor"`
}

type ListOrdersResponse struct {
	Strategy   string `json:"strategy"`
	QueryCount int    `json:"queryCount"`
	Orders     any    `json:"orders"`
}
