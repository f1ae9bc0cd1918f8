package core

import "math"

// SummaryReport aggregates the valid orders of one input.
type SummaryReport struct {
	TotalCount      int
	TotalAmount     float64
	AverageAmount   float64
	UniqueCustomers int
}

// Aggregator accumulates orders one at a time. The zero value is ready to use.
type Aggregator struct {
	count     int
	sum       float64
	comp      float64
	simple    float64
	customers map[int]struct{}
}

// Add folds o into the running totals.
func (a *Aggregator) Add(o Order) {
	if a.customers == nil {
		a.customers = make(map[int]struct{})
	}
	a.count++
	a.customers[o.CustomerID] = struct{}{}
	a.simple += o.Amount

	// Neumaier compensated summation.
	t := a.sum + o.Amount
	if math.Abs(a.sum) >= math.Abs(o.Amount) {
		a.comp += (a.sum - t) + o.Amount
	} else {
		a.comp += (o.Amount - t) + a.sum
	}
	a.sum = t
}

// Report returns the summary of everything added so far.
func (a *Aggregator) Report() SummaryReport {
	r := SummaryReport{
		TotalCount:      a.count,
		UniqueCustomers: len(a.customers),
	}
	if a.count == 0 {
		return r
	}
	r.TotalAmount = a.sum + a.comp
	// Compensation breaks down once the sum overflows: Inf - Inf is NaN.
	if math.IsNaN(r.TotalAmount) && math.IsInf(a.simple, 0) {
		r.TotalAmount = a.simple
	}
	r.AverageAmount = r.TotalAmount / float64(a.count)
	return r
}

// Summarize computes the report for a complete list of orders.
func Summarize(orders []Order) SummaryReport {
	var a Aggregator
	for _, o := range orders {
		a.Add(o)
	}
	return a.Report()
}
