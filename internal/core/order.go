package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldSeparator delimits the fields of an order line.
const FieldSeparator = ";"

// fieldCount is the number of fields in an order line: orderId;customerId;amount.
const fieldCount = 3

// Order is a validated purchase record.
type Order struct {
	OrderID    int
	CustomerID int
	Amount     float64
}

var (
	ErrFieldCount     = errors.New("wrong field count")
	ErrEmptyField     = errors.New("empty field")
	ErrInvalidNumber  = errors.New("invalid number format")
	ErrNegativeAmount = errors.New("negative amount")
)

// Reason codes returned by Reason.
const (
	ReasonFieldCount     = "wrong_field_count"
	ReasonEmptyField     = "empty_field"
	ReasonInvalidNumber  = "invalid_number_format"
	ReasonNegativeAmount = "negative_amount"
	ReasonUnknown        = "unknown"
)

// Rejection describes why a line could not be turned into an Order.
type Rejection struct {
	Line   string
	Err    error
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return r.Err.Error()
	}
	return r.Err.Error() + ": " + r.Detail
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(line string, err error, format string, args ...any) *Rejection {
	return &Rejection{Line: line, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// ParseLine validates one raw line and returns the Order it describes.
//
// The line must hold exactly three ';'-separated fields. Empty trailing fields
// count, so "1;2;" has three fields and "1;2;3;" has four. Fields are trimmed
// before parsing. On failure the returned error is a *Rejection wrapping one
// of ErrFieldCount, ErrEmptyField, ErrInvalidNumber or ErrNegativeAmount.
//
// Examples:
//
//	ParseLine("1;100;50.00")   -> Order{1, 100, 50}, nil
//	ParseLine(" 2 ; 7 ; 3.5 ") -> Order{2, 7, 3.5}, nil
//	ParseLine("")              -> ErrFieldCount
//	ParseLine("3;;10.00")      -> ErrEmptyField
func ParseLine(line string) (Order, error) {
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != fieldCount {
		return Order{}, reject(line, ErrFieldCount, "got %d, want %d", len(parts), fieldCount)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Order{}, reject(line, ErrEmptyField, "field %d is empty", i+1)
		}
	}

	orderID, err := parseID(parts[0])
	if err != nil {
		return Order{}, reject(line, ErrInvalidNumber, "order id %q", parts[0])
	}
	customerID, err := parseID(parts[1])
	if err != nil {
		return Order{}, reject(line, ErrInvalidNumber, "customer id %q", parts[1])
	}
	// ParseFloat takes Go digit separators; a plain decimal never has one.
	if strings.Contains(parts[2], "_") {
		return Order{}, reject(line, ErrInvalidNumber, "amount %q", parts[2])
	}
	amount, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Order{}, reject(line, ErrInvalidNumber, "amount %q", parts[2])
	}

	if amount < 0 {
		return Order{}, reject(line, ErrNegativeAmount, "%v", amount)
	}

	return Order{OrderID: orderID, CustomerID: customerID, Amount: amount}, nil
}

// parseID parses a base-10 identifier that fits in 32 bits.
func parseID(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Reason maps a parse error to a stable reason code.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFieldCount):
		return ReasonFieldCount
	case errors.Is(err, ErrEmptyField):
		return ReasonEmptyField
	case errors.Is(err, ErrInvalidNumber):
		return ReasonInvalidNumber
	case errors.Is(err, ErrNegativeAmount):
		return ReasonNegativeAmount
	default:
		return ReasonUnknown
	}
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d, customerId=%d, amount=%s}", o.OrderID, o.CustomerID, FormatAmount(o.Amount))
}
