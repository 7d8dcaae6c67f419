package pin

// denylist holds well-known weak PINs. Membership is an exact string match,
// so a 6-digit PIN never collides with a 4-digit entry.
var denylist = map[string]struct{}{
	"1234": {},
	"0000": {},
	"1111": {},
	"1212": {},
	"7777": {},
	"1004": {},
	"2000": {},
	"4321": {},
	"2580": {},
}

// IsSequential reports whether every adjacent digit pair ascends by exactly
// one, or every adjacent pair descends by exactly one, across the entire
// string. Inputs of length zero or one satisfy both scans vacuously and are
// therefore sequential; the policy never receives them from the Engine, but
// the convention is fixed and tested.
func IsSequential(pin string) bool {
	asc, desc := true, true
	for i := 1; i < len(pin); i++ {
		prev := int(pin[i-1] - '0')
		cur := int(pin[i] - '0')
		if cur != prev+1 {
			asc = false
		}
		if cur != prev-1 {
			desc = false
		}
	}
	return asc || desc
}

// HasTooManyRepeats reports whether the string contains a run of three or
// more consecutive equal digits, or consists entirely of one repeated digit.
// The all-same check matters independently below length 3 ("11" is weak).
func HasTooManyRepeats(pin string) bool {
	run := 1
	for i := 1; i < len(pin); i++ {
		if pin[i] == pin[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	for i := 1; i < len(pin); i++ {
		if pin[i] != pin[0] {
			return false
		}
	}
	return true
}

// IsDigits reports whether the string is non-empty and consists of decimal
// digits only. It is the structural precondition the quality predicates
// assume of their input.
func IsDigits(pin string) bool {
	if pin == "" {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// IsDenylisted reports whether the PIN is a member of the fixed denylist.
func IsDenylisted(pin string) bool {
	_, ok := denylist[pin]
	return ok
}

// IsWeak is the combined policy predicate enforced at PIN creation and at
// every PIN change. It is never applied retroactively to loaded records.
func IsWeak(pin string) bool {
	return IsSequential(pin) || HasTooManyRepeats(pin) || IsDenylisted(pin)
}
