package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the read surface shared by *pgxpool.Pool and pgx.Tx, so the
// same query helpers serve standalone calls and tx-scoped ones.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DeliveryStatus is the lifecycle of both incoming shipments and outgoing
// dispatches: Pending -> Ongoing -> Received. Received is terminal.
type DeliveryStatus string

const (
	StatusPending  DeliveryStatus = "Pending"
	StatusOngoing  DeliveryStatus = "Ongoing"
	StatusReceived DeliveryStatus = "Received"
)

// ParseDeliveryStatus validates a client-supplied status string.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(s) {
	case StatusPending, StatusOngoing, StatusReceived:
		return DeliveryStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown delivery status %q", ErrInvalid, s)
}

// Sentinel errors the web adapter maps to HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalid           = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ClampQuantity bounds a requested dispatch quantity to [1, available].
// Callers must ensure available >= 1 before clamping.
func ClampQuantity(requested, available int) int {
	if requested < 1 {
		return 1
	}
	if requested > available {
		return available
	}
	return requested
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation,
// the backstop for the race between an availability probe and the insert.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type User struct {
	ID          int       `json:"userid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayname"`
	CreatedAt   time.Time `json:"created_at"`
}
