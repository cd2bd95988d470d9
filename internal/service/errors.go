package service

type ErrorCode string

const (
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeUnspecified        ErrorCode = "UNSPECIFIED"
	ErrorCodeInvalidBody        ErrorCode = "INVALID_BODY"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrorCodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
	ErrorCodeEventNotFound      ErrorCode = "EVENT_NOT_FOUND"
	ErrorCodeEventNotInCart     ErrorCode = "EVENT_NOT_IN_CART"
	ErrorCodeTeamSize           ErrorCode = "TEAM_SIZE"
	ErrorCodeParticipantClash   ErrorCode = "PARTICIPANT_CONFLICT"
	ErrorCodePaymentProof       ErrorCode = "PAYMENT_PROOF_MISSING"
	ErrorCodeCartEmpty          ErrorCode = "CART_EMPTY"
	ErrorCodeInvalidStep        ErrorCode = "INVALID_STEP"
	ErrorCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrorCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	ErrorCodeInvalidFile        ErrorCode = "INVALID_FILE"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}
