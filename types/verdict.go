package types

// Verdict is the validator's decision on one transaction.
type Verdict struct {
	// 0 = accepted. Non-zero = the numeric reject reason.
	Code uint32 `cramberry:"1"`
	// Rejection detail (debugging only).
	Info string `cramberry:"2"`
}

// Accepted returns true if the transaction was accepted.
func (v Verdict) Accepted() bool { return v.Code == 0 }
