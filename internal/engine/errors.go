package engine

import (
	"errors"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/oracle"
)

var (
	// ErrValidation marks bad caller input: empty name, empty
	// utterance. No state is touched and no oracle call is made.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks an unknown session or topic id.
	ErrNotFound = errors.New("not found")

	// Oracle failures pass through the engine untouched; both leave the
	// session exactly as it was, so the caller may resubmit the turn.
	ErrOracleUnavailable = oracle.ErrUnavailable
	ErrMalformedJudgment = oracle.ErrMalformed
)
