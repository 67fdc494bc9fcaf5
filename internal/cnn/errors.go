package cnn

import "errors"

// Sentinel errors for the two failure classes of the forward operators.
// Every failure is returned wrapped around one of these; callers
// discriminate with errors.Is.
var (
	// ErrShapeMismatch reports operand shapes inconsistent with the
	// operator's contract: window vs. weights, input channels vs. filter
	// input channels, non-square filters, wrong rank, dtype disagreement.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidArgument reports a hyperparameter value the operator
	// cannot work with: negative padding, non-positive stride or window
	// size, an output extent that comes out empty, an unknown pooling
	// mode.
	ErrInvalidArgument = errors.New("invalid argument")
)
