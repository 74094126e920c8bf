package hwrand

import "errors"

var (
	// ErrUnsupportedInstruction is returned by the constructors when the
	// processor, or the build target, does not permit using the instruction.
	ErrUnsupportedInstruction = errors.New("hwrand: the hardware instruction is not supported")

	// ErrHardwareFailure is returned when every attempt of the retry budget
	// came back without a value.
	ErrHardwareFailure = errors.New("hwrand: hardware generator failure")
)

// Error records which instruction an error came from.
type Error struct {
	Instruction Instruction
	Err         error
}

func (e *Error) Error() string {
	return e.Err.Error() + " (" + e.Instruction.String() + ")"
}

func (e *Error) Unwrap() error { return e.Err }
