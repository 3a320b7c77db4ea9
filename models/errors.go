package models

import "errors"

var (
	// ErrNotFound is returned by store reads when the requested path holds no data.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned when the identity provider rejects a login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoShopForUser is returned when an authenticated user owns no shop.
	ErrNoShopForUser = errors.New("no matching shop found for this user")

	// ErrFetchFailed wraps any remote failure that aborts a dashboard aggregation.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrInvalidTransition is returned when an order status change is not allowed.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
