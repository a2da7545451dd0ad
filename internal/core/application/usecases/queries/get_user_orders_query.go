package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery retrieves the order list of one user, newest first,
// excluding soft-deleted orders.
type GetUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for a user's order list.
func NewGetUserOrdersQuery(userID kernel.UUID) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the user whose orders are listed.
func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// GetUserOrdersQueryResponse is one row of a user's order list.
type GetUserOrdersQueryResponse struct {
	OrderID          string
	Status           string
	PaymentMethod    string
	PaymentStatus    string
	FinalOrderAmount float64
	Currency         string
	VendorOrderCount int
	CreatedAt        time.Time
}
