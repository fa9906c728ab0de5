package abi

import (
	"github.com/roach88/amitem/internal/item"
)

// Status is a result's outcome.
type Status uint8

const (
	StatusOK Status = iota
	StatusError
	StatusInvalidResult
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	}
	return "invalid_result"
}

// Result owns the handles an operation returns until ResultFree.
type Result struct {
	status Status
	err    error
	items  []*item.Handle
	freed  bool
}

func itemResult(h *item.Handle) *Result {
	return &Result{status: StatusOK, items: []*item.Handle{h}}
}

func errorResult(err error) *Result {
	return &Result{status: StatusError, err: err}
}

// ResultStatus returns StatusInvalidResult for a nil or freed result.
func ResultStatus(r *Result) Status {
	if r == nil || r.freed {
		return StatusInvalidResult
	}
	return r.status
}

// ResultError returns the error message of a failed result, or the empty span.
func ResultError(r *Result) ByteSpan {
	if r == nil || r.err == nil {
		return ByteSpan{}
	}
	return Str(r.err.Error())
}

// ResultItem returns the first handle of the result, nil if there is none.
func ResultItem(r *Result) *item.Handle {
	if r == nil || r.freed || len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}

// ResultItems returns every handle of the result.
func ResultItems(r *Result) []*item.Handle {
	if r == nil || r.freed {
		return nil
	}
	return r.items
}

// ResultSize returns the number of handles in the result.
func ResultSize(r *Result) int {
	if r == nil || r.freed {
		return 0
	}
	return len(r.items)
}

// ResultFree releases every handle the result owns. Freeing twice is a no-op.
func ResultFree(r *Result) {
	if r == nil || r.freed {
		return
	}
	r.freed = true
	for _, h := range r.items {
		if err := h.Release(); err != nil {
			swallowed("ResultFree", err)
		}
	}
	r.items = nil
}
