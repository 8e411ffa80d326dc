package logger

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under the key "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// AccountID records the signed-in account under "account_id".
// The zero UUID means signed out and produces an empty Attr.
func AccountID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("account_id", id.String())
}

// PolicyID records a workspace identifier under "policy_id".
func PolicyID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("policy_id", id.String())
}

// Plan records the derived subscription plan under "plan".
// Accepts any fmt.Stringer-like value so callers do not convert.
func Plan(plan any) slog.Attr {
	if plan == nil {
		return slog.Attr{}
	}
	return slog.Any("plan", plan)
}

// Balance records an amount in minor units under "outstanding_balance".
func Balance(amount int64) slog.Attr {
	return slog.Int64("outstanding_balance", amount)
}

// Version records a store snapshot version under "version".
func Version(v uint64) slog.Attr {
	return slog.Uint64("version", v)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Route records a navigation target under "route".
func Route(path string) slog.Attr {
	return slog.String("route", path)
}
