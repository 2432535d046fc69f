package exchange

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind: класс ошибки биржи, по нему раннер решает, что делать дальше.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindRateLimit
	KindRejected
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindRejected:
		return "rejected"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error: ошибка операции биржи.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError заворачивает err; если это уже *Error: сохраняет его Kind.
func NewError(op string, kind Kind, err error) *Error {
	if err == nil {
		err = errors.New(kind.String())
	}
	var xe *Error
	if kind == KindUnknown && errors.As(err, &xe) {
		kind = xe.Kind
	}
	if kind == KindUnknown {
		kind = classifyTransport(err)
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf достаёт Kind из цепочки ошибок.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Kind
	}
	return classifyTransport(err)
}

// Retryable: имеет смысл ждать следующего цикла, а не чинить конфиг.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindRateLimit || k == KindUnknown
}

func classifyTransport(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return KindNetwork
	}
	return KindUnknown
}
