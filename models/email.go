package models

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	conf "github.com/Bennybas/hcp-hco-backend/config"
)

var alertOnce sync.Once

// AlertRefreshFailure emails the ops address when a background refresh
// fails. At most one mail is sent per process start: the first failure
// is the signal, the rest is noise the logs already carry. Does nothing
// outside prod or when SendGrid is not configured.
func AlertRefreshFailure(key string, refreshErr error) {
	if conf.ConfigStrings[conf.Environment] != `prod` {
		return
	}

	apiKey, ok := conf.ConfigStrings[conf.SendGridAPIKey]
	if !ok || apiKey == "" {
		return
	}
	to, ok := conf.ConfigStrings[conf.AlertEmail]
	if !ok || to == "" {
		return
	}

	alertOnce.Do(func() {
		subject := "hcp-hco-backend: background refresh failing"
		body := fmt.Sprintf(
			"The background refresh of cache key %q failed:\n\n%v\n\n"+
				"Stale data is being served where available. Further "+
				"failures are logged but not mailed.",
			key,
			refreshErr,
		)

		sgm := mail.NewV3MailInit(
			&mail.Email{Name: "hcp-hco-backend", Address: to},
			subject,
			&mail.Email{Address: to},
			mail.NewContent("text/plain", body),
		)

		req := sendgrid.GetRequest(
			apiKey,
			"/v3/mail/send",
			"https://api.sendgrid.com",
		)
		req.Method = "POST"
		req.Body = mail.GetRequestBody(sgm)
		resp, err := sendgrid.API(req)
		if err != nil {
			glog.Errorf("SendGrid: %s", err.Error())
			return
		}

		glog.Infof("SendGrid: alert sent %d %s", resp.StatusCode, to)
	})
}
