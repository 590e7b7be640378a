package youtube

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/api/googleapi"

	"thirdcoast.systems/trendscout/internal/apperror"
)

const consoleURL = "https://console.developers.google.com/apis/api/youtube.googleapis.com/overview?project="

var projectPattern = regexp.MustCompile(`project (\d+)`)

// IsCommentsDisabled reports whether err is the provider's commentsDisabled
// failure.
func IsCommentsDisabled(err error) bool {
	return hasReason(err, "commentsDisabled")
}

// classify maps a provider failure to an *apperror.Error. Disabled-API and
// invalid-key failures become configuration errors with guidance.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperror.Upstream(msg, err)
	}

	text := gerr.Message
	for _, item := range gerr.Errors {
		text += " " + item.Message
	}

	switch {
	case gerr.Code == http.StatusForbidden &&
		(strings.Contains(text, "YouTube Data API v3 has not been used") || hasReason(err, "accessNotConfigured")):
		project := "YOUR_PROJECT_ID"
		if m := projectPattern.FindStringSubmatch(text); m != nil {
			project = m[1]
		}
		return apperror.Configuration(
			"YouTube Data API v3 is not enabled",
			"Enable YouTube Data API v3 in the Google Cloud Console:\n"+consoleURL+project,
			err,
		)
	case strings.Contains(text, "API key not valid") || hasReason(err, "keyInvalid"):
		return apperror.Configuration(
			"YouTube API key is not valid",
			"Check YOUTUBE_API_KEY in your environment.",
			err,
		)
	}
	return apperror.Upstream(msg, err)
}

func hasReason(err error, reason string) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}
