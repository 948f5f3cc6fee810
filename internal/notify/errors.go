package notify

import "errors"

var (
	ErrInvalidRecipient  = errors.New("invalid recipient")
	ErrMailNotConfigured = errors.New("mail relay not configured")
	ErrSendFailed        = errors.New("failed to send email")
)

// InvalidRecipientMessage is shown when the recipient is empty or malformed.
const InvalidRecipientMessage = "Please enter a valid email address."
