package pinvault

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sachk/pinvault/internal"
)

const (
	fieldSeparator   = "|"
	recordFieldCount = 5
)

// encodeRecord renders the fixed wire form
//
//	username|pin|balance|wrongAttempts|locked
//
// with the balance carrying exactly two fractional digits and locked as
// "1"/"0", then applies the at-rest byte transform. The format is frozen
// for compatibility with existing store files.
func encodeRecord(r AccountRecord) []byte {
	locked := "0"
	if r.Locked {
		locked = "1"
	}

	line := strings.Join([]string{
		r.Username,
		r.PIN,
		strconv.FormatFloat(roundCents(r.Balance), 'f', 2, 64),
		strconv.Itoa(r.WrongAttempts),
		locked,
	}, fieldSeparator)

	return internal.Transform([]byte(line))
}

// decodeRecord inverts encodeRecord. Any structural or numeric defect is
// wrapped in [ErrMalformedRecord] so load can skip the line without
// aborting.
func decodeRecord(raw []byte) (AccountRecord, error) {
	line := string(internal.Transform(raw))

	fields := strings.Split(line, fieldSeparator)
	if len(fields) != recordFieldCount {
		return AccountRecord{}, fmt.Errorf("%w: %d fields", ErrMalformedRecord, len(fields))
	}
	if fields[0] == "" {
		return AccountRecord{}, fmt.Errorf("%w: empty username", ErrMalformedRecord)
	}

	balance, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("%w: balance: %v", ErrMalformedRecord, err)
	}

	attempts, err := strconv.Atoi(fields[3])
	if err != nil {
		return AccountRecord{}, fmt.Errorf("%w: attempts: %v", ErrMalformedRecord, err)
	}

	return AccountRecord{
		Username:      fields[0],
		PIN:           fields[1],
		Balance:       balance,
		WrongAttempts: attempts,
		Locked:        fields[4] == "1",
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
