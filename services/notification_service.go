package services

import (
	"log"

	fcm "github.com/appleboy/go-fcm"
	"gopkg.in/gomail.v2"
)

// PushClient is the narrow surface of the push messaging service used by the
// dispatcher. *fcm.Client satisfies it.
type PushClient interface {
	Send(msg *fcm.Message) (*fcm.Response, error)
}

// EmailDialer is the narrow surface of the transactional email service.
// *gomail.Dialer satisfies it.
type EmailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// NotificationService delivers push messages to a single device token and
// transactional email to the fixed admin address. Both channels are
// independent and best-effort: delivery failures are captured and logged,
// never surfaced to the caller, and nothing is retried.
type NotificationService interface {
	SendPush(token, title, body string, data map[string]string)
	SendAdminEmail(subject, htmlBody string)
}

type notificationService struct {
	push         PushClient
	dialer       EmailDialer
	fromAddress  string
	adminAddress string
}

// NewNotificationService creates the dispatcher. Either channel may be nil
// when unconfigured; its sends become logged no-ops.
func NewNotificationService(push PushClient, dialer EmailDialer, fromAddress, adminAddress string) NotificationService {
	return &notificationService{
		push:         push,
		dialer:       dialer,
		fromAddress:  fromAddress,
		adminAddress: adminAddress,
	}
}

// SendPush delivers one message to one device token, at most once.
func (s *notificationService) SendPush(token, title, body string, data map[string]string) {
	if token == "" {
		log.Printf("INFO: [NotificationService] Skipping push send: empty device token.")
		return
	}
	if s.push == nil {
		log.Printf("WARN: [NotificationService] Skipping push send to token ending '%s': push client not configured.", tokenSuffix(token))
		return
	}

	payload := make(map[string]interface{}, len(data))
	for k, v := range data {
		payload[k] = v
	}

	msg := &fcm.Message{
		To:   token,
		Data: payload,
		Notification: &fcm.Notification{
			Title: title,
			Body:  body,
		},
	}

	resp, err := s.push.Send(msg)
	if err != nil {
		log.Printf("ERROR: [NotificationService] Push send failed for token ending '%s': %v", tokenSuffix(token), err)
		return
	}
	if resp != nil && resp.Failure > 0 {
		for _, result := range resp.Results {
			if result.Error != nil {
				log.Printf("ERROR: [NotificationService] Push rejected for token ending '%s': %v", tokenSuffix(token), result.Error)
				break
			}
		}
		return
	}
	log.Printf("INFO: [NotificationService] Push delivered to token ending '%s' ('%s').", tokenSuffix(token), title)
}

// SendAdminEmail delivers one HTML mail to the configured admin address, at
// most once.
func (s *notificationService) SendAdminEmail(subject, htmlBody string) {
	if s.dialer == nil || s.adminAddress == "" {
		log.Printf("WARN: [NotificationService] Skipping admin email '%s': email channel not configured.", subject)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromAddress)
	m.SetHeader("To", s.adminAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("ERROR: [NotificationService] Admin email '%s' failed: %v", subject, err)
		return
	}
	log.Printf("INFO: [NotificationService] Admin email '%s' sent to %s.", subject, s.adminAddress)
}

// tokenSuffix returns the last few characters of a device token so logs can
// correlate sends without recording the full credential.
func tokenSuffix(token string) string {
	const keep = 6
	if len(token) <= keep {
		return token
	}
	return token[len(token)-keep:]
}
