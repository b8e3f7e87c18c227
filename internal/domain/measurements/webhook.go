package measurements

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// WebhookCall es el form que Withings envía al callback de notificaciones.
type WebhookCall struct {
	UserID    int64
	Category  NotificationCategory
	StartDate time.Time
	EndDate   time.Time
}

// ParseWebhookCall no levanta ningún servidor; sirve a quien ya recibe el callback.
func ParseWebhookCall(form url.Values) (WebhookCall, error) {
	userID, err := formInt(form, "userid")
	if err != nil {
		return WebhookCall{}, err
	}
	appli, err := formInt(form, "appli")
	if err != nil {
		return WebhookCall{}, err
	}
	category, err := ParseNotificationCategory(int(appli))
	if err != nil {
		return WebhookCall{}, err
	}
	start, err := formInt(form, "startdate")
	if err != nil {
		return WebhookCall{}, err
	}
	end, err := formInt(form, "enddate")
	if err != nil {
		return WebhookCall{}, err
	}
	if end < start {
		return WebhookCall{}, fmt.Errorf("%w: enddate before startdate", ErrInvalidInput)
	}

	return WebhookCall{
		UserID:    userID,
		Category:  category,
		StartDate: time.Unix(start, 0).UTC(),
		EndDate:   time.Unix(end, 0).UTC(),
	}, nil
}

func formInt(form url.Values, key string) (int64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return 0, fmt.Errorf("%w: %s required", ErrInvalidInput, key)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, key)
	}
	return n, nil
}
