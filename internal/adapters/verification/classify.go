package verification

import (
	"strings"

	"github.com/nouspsyche/launchpad/internal/domain/models"
)

// Classify maps the result of an explorer submission to an outcome. Explorers
// report an already verified contract as an error; any casing of
// "already verified" in the message counts as success.
func Classify(err error) models.VerificationOutcome {
	if err == nil {
		return models.VerificationOutcome{Kind: models.Verified}
	}
	if strings.Contains(strings.ToLower(err.Error()), "already verified") {
		return models.VerificationOutcome{Kind: models.AlreadyVerified}
	}
	return models.VerificationOutcome{Kind: models.Failed, Reason: err.Error()}
}
