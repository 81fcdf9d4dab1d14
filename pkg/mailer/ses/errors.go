package ses

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/massmail/pkg/mailer"
)

// rejectionCodes are SES error codes describing a refusal of the message
// itself rather than a transport problem.
var rejectionCodes = map[string]struct{}{
	"MessageRejected":                    {},
	"MailFromDomainNotVerifiedException": {},
	"AccountSuspendedException":          {},
	"SendingPausedException":             {},
	"BadRequestException":                {},
	"NotFoundException":                  {},
}

// wrapSESError classifies an SES failure as mailer.ErrRejected or
// mailer.ErrSendFailed.
func wrapSESError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := rejectionCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s: %s", mailer.ErrRejected, apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
	}
	return fmt.Errorf("%w: %w", mailer.ErrSendFailed, err)
}
