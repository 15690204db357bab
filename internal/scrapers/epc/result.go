package epc

import "fmt"

// EnergyInfo is the rating of an energy performance certificate and the date it expires.
type EnergyInfo struct {
	Rating     string
	ValidUntil string
}

type Outcome int

const (
	// Failed means the lookup could not be completed, Result.Err says why.
	Failed Outcome = iota
	Found
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// Result of an energy certificate lookup. Info is only set when Outcome is Found.
type Result struct {
	Outcome Outcome
	Info    EnergyInfo
	Err     error
}

func found(info EnergyInfo) Result {
	return Result{Outcome: Found, Info: info}
}

func failed(err error) Result {
	return Result{Outcome: Failed, Err: err}
}

var notFound = Result{Outcome: NotFound}

// Display is the pair shown in the rating and valid-until fields.
func (r Result) Display() (rating string, validUntil string) {
	switch r.Outcome {
	case Found:
		return r.Info.Rating, r.Info.ValidUntil
	case NotFound:
		return "Not found", "Not found"
	default:
		return "Error", "Error"
	}
}

func (r Result) String() string {
	rating, validUntil := r.Display()
	if r.Outcome == Failed && r.Err != nil {
		return fmt.Sprintf("%s (%s)", rating, r.Err.Error())
	}
	return fmt.Sprintf("%s, valid until %s", rating, validUntil)
}
