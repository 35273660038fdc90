package distributor

import "time"

const (
	// Sentinel marks a value that is unavailable because the lookup failed.
	Sentinel = "/"

	// NotAvailable marks a field that is legitimately absent from an
	// otherwise successful extraction.
	NotAvailable = "N/A"

	// TimeLayout is the format of Result.LastUpdated (YYYY-MM-DD HH:MM:SS).
	TimeLayout = "2006-01-02 15:04:05"
)

// Result is the normalized pricing and availability tuple for one part at
// one distributor. All four fields are always non-empty.
type Result struct {
	UnitPrice   string `json:"unit_price" bson:"unit_price"`
	PackageType string `json:"package_type" bson:"package_type"`
	Quantity    string `json:"quantity_available" bson:"quantity_available"`
	LastUpdated string `json:"last_updated" bson:"last_updated"`
}

// Timestamp formats t as a LastUpdated value.
func Timestamp(t time.Time) string {
	return t.Format(TimeLayout)
}

// Failed returns the failure tuple ("/", "/", "/", now).
func Failed(now time.Time) Result {
	return Result{
		UnitPrice:   Sentinel,
		PackageType: Sentinel,
		Quantity:    Sentinel,
		LastUpdated: Timestamp(now),
	}
}

// Blank returns a tuple with every field set to the sentinel, including the
// timestamp. It is used when a row was never looked up at all.
func Blank() Result {
	return Result{
		UnitPrice:   Sentinel,
		PackageType: Sentinel,
		Quantity:    Sentinel,
		LastUpdated: Sentinel,
	}
}

// Fields returns the tuple in column order.
func (r Result) Fields() []string {
	return []string{r.UnitPrice, r.PackageType, r.Quantity, r.LastUpdated}
}

// Clock returns the current time. Orchestrators and tests substitute a
// fixed clock to make LastUpdated deterministic.
type Clock func() time.Time

// Now returns c(), or time.Now() when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
