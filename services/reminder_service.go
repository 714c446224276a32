// services/reminder_service.go
package services

import (
	"context"
	"strings"
	"time"

	"carwash-backend/config"
	"carwash-backend/logger"
	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultReminderTemplate is filled with [CustomerName], [Plate], [Date] and [Shop].
const DefaultReminderTemplate = "Chào [CustomerName], xe [Plate] đến hạn thay dầu vào ngày [Date]. Hẹn gặp lại quý khách tại [Shop]!"

// SMSSender delivers a text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		logger.Log.Debug("sms sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
	return nil
}

// LogSender only logs; it stands in when Twilio is not configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, body string) error {
	logger.Log.Info("sms (not sent, twilio disabled)", zap.String("to", to), zap.String("body", body))
	return nil
}

// ReminderRun counts one pass over due oil changes.
type ReminderRun struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type ReminderService struct {
	db        *gorm.DB
	sender    SMSSender
	daysAhead int
	shop      config.Shop
	template  string
	now       Clock
}

func NewReminderService(db *gorm.DB, sender SMSSender, daysAhead int, shop config.Shop, now Clock) *ReminderService {
	if now == nil {
		now = time.Now
	}
	if sender == nil {
		sender = LogSender{}
	}
	return &ReminderService{
		db:        db,
		sender:    sender,
		daysAhead: daysAhead,
		shop:      shop,
		template:  DefaultReminderTemplate,
		now:       now,
	}
}

// SendDueReminders texts every customer whose next oil change falls within
// daysAhead days and has not been reminded. Each attempt is logged; failed
// ones stay unreminded and are retried on the next run.
func (s *ReminderService) SendDueReminders(ctx context.Context) (ReminderRun, error) {
	var run ReminderRun
	repo := repository.NewOilChangeRepository(s.db)

	until := utils.FormatDate(s.now().AddDate(0, 0, s.daysAhead))
	due, err := repo.Due(ctx, until)
	if err != nil {
		return run, err
	}

	for _, oc := range due {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		message := s.render(oc)
		to := toE164(oc.CustomerPhone)
		status, errorMsg := "sent", ""
		if err := s.sender.Send(ctx, to, message); err != nil {
			logger.Log.Warn("reminder failed", zap.Uint("oil_change_id", oc.ID), zap.String("to", to), zap.Error(err))
			status, errorMsg = "failed", err.Error()
			run.Failed++
		} else {
			run.Sent++
		}

		entry := &models.ReminderLog{
			OilChangeID:  oc.ID,
			CustomerID:   oc.CustomerID,
			Phone:        to,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      "sms",
			SentAt:       s.now(),
		}
		if err := repo.LogReminder(ctx, entry); err != nil {
			logger.Log.Error("failed to log reminder", zap.Uint("oil_change_id", oc.ID), zap.Error(err))
		}
		if status == "sent" {
			if err := repo.MarkReminded(ctx, oc.ID); err != nil {
				return run, err
			}
		}
	}

	logger.Log.Info("oil change reminders processed", zap.Int("sent", run.Sent), zap.Int("failed", run.Failed))
	return run, nil
}

func (s *ReminderService) render(oc repository.DueOilChange) string {
	date := oc.NextChangeDate
	if t, err := utils.ParseDate(date); err == nil {
		date = t.Format("02/01/2006")
	}
	return strings.NewReplacer(
		"[CustomerName]", oc.CustomerName,
		"[Plate]", oc.VehiclePlate,
		"[Date]", date,
		"[Shop]", s.shop.Name,
	).Replace(s.template)
}

// toE164 turns a local Vietnamese number (0901234567) into +84901234567.
func toE164(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(phone)
	switch {
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case strings.HasPrefix(cleaned, "84"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+84" + cleaned[1:]
	}
	return cleaned
}

// SenderFromConfig picks Twilio when credentials are present.
func SenderFromConfig(cfg *config.Config) SMSSender {
	if cfg.TwilioEnabled() {
		return NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	logger.Log.Warn("twilio not configured, reminders will only be logged")
	return LogSender{}
}
