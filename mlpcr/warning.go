package mlpcr

import "fmt"

// WarningCode identifies a recoverable condition encountered during a fit.
type WarningCode int

const (
	// WarnWithinClamped indicates the requested within-group component count
	// exceeded the n-G degrees-of-freedom bound and was clamped down.
	WarnWithinClamped WarningCode = iota + 1
	// WarnBetweenClamped indicates the requested between-group component
	// count exceeded the G-1 degrees-of-freedom bound and was clamped down.
	WarnBetweenClamped
	// WarnWithinDropped indicates rank deficiency in the assembled score
	// matrix forced dropping every within-group component.
	WarnWithinDropped
	// WarnBetweenDropped indicates rank deficiency in the assembled score
	// matrix forced dropping every between-group component.
	WarnBetweenDropped
)

// Warning reports a recoverable condition from Fit. The fit completes and
// returns a usable model; callers decide whether and how to surface these.
// Clamp warnings carry the requested and clamped component counts.
type Warning struct {
	Code      WarningCode
	Requested int
	Clamped   int
}

func (w Warning) String() string {
	switch w.Code {
	case WarnWithinClamped:
		return fmt.Sprintf("requested %d within-group components, clamped to %d", w.Requested, w.Clamped)
	case WarnBetweenClamped:
		return fmt.Sprintf("requested %d between-group components, clamped to %d", w.Requested, w.Clamped)
	case WarnWithinDropped:
		return "rank deficiency dropped all within-group components"
	case WarnBetweenDropped:
		return "rank deficiency dropped all between-group components"
	}
	return fmt.Sprintf("unknown warning code %d", int(w.Code))
}
