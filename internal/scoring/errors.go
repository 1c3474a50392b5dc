package scoring

import "fmt"

// NonFiniteError reports a NaN/Inf result from a kernel, fatal per
// spec §7. It carries the context a CLI driver needs to print before
// exiting nonzero.
type NonFiniteError struct {
	Scorer Kind
	QID    string
	DocID  uint32
	Value  float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("scoring: non-finite result from %s (qid=%s docid=%d value=%v)", e.Scorer, e.QID, e.DocID, e.Value)
}

// Check returns a *NonFiniteError wrapping v if v is not finite,
// otherwise nil.
func Check(k Kind, qid string, docID uint32, v float64) error {
	if IsFinite(v) {
		return nil
	}
	return &NonFiniteError{Scorer: k, QID: qid, DocID: docID, Value: v}
}
