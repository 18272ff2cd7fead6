package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

type ReminderSource interface {
	KennelReminders(now time.Time) ([]ReminderDraft, error)
}

type ReminderNotifierConfig struct {
	BotToken     string
	ChatID       string
	Interval     time.Duration
	APIBase      string
	NotifyMedium bool
}

// ReminderNotifier pushes due-soon reminder drafts to a Telegram chat. Each
// draft is sent at most once per day.
type ReminderNotifier struct {
	source                 ReminderSource
	botToken               string
	chatID                 string
	apiBase                string
	enabled                bool
	interval               time.Duration
	notifyMedium           bool
	location               *time.Location
	client                 *http.Client
	now                    func() time.Time
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewReminderNotifier(source ReminderSource, config ReminderNotifierConfig, location *time.Location) *ReminderNotifier {
	if location == nil {
		location = time.Local
	}
	interval := config.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	apiBase := strings.TrimRight(strings.TrimSpace(config.APIBase), "/")
	if apiBase == "" {
		apiBase = defaultTelegramAPIBase
	}

	return &ReminderNotifier{
		source:       source,
		botToken:     config.BotToken,
		chatID:       config.ChatID,
		apiBase:      apiBase,
		enabled:      config.BotToken != "" && config.ChatID != "",
		interval:     interval,
		notifyMedium: config.NotifyMedium,
		location:     location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		now:                    time.Now,
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (notifier *ReminderNotifier) Enabled() bool {
	return notifier.enabled
}

func (notifier *ReminderNotifier) Start(ctx context.Context) {
	if !notifier.enabled {
		return
	}

	ticker := time.NewTicker(notifier.interval)
	go func() {
		defer ticker.Stop()

		notifier.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notifier.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce sends every pending draft and returns how many were delivered.
func (notifier *ReminderNotifier) RunOnce(ctx context.Context) int {
	now := notifier.now().In(notifier.location)
	today := NormalizeDate(now, notifier.location)

	drafts, err := notifier.source.KennelReminders(now)
	if err != nil {
		log.Printf("notifications: build reminders failed: %v", err)
		return 0
	}

	delivered := 0
	for _, draft := range drafts {
		if !notifier.wants(draft) {
			continue
		}
		if !notifier.shouldSend(draft.ID, today) {
			continue
		}
		if err := notifier.sendTelegram(ctx, FormatReminderMessage(draft)); err != nil {
			log.Printf("notifications: send %s reminder failed: %v", draft.Category, err)
			notifier.forget(draft.ID)
			continue
		}
		delivered++
	}
	return delivered
}

func (notifier *ReminderNotifier) wants(draft ReminderDraft) bool {
	if draft.DaysUntilDue < 0 {
		return false
	}
	switch draft.Priority {
	case ReminderPriorityHigh:
		return true
	case ReminderPriorityMedium:
		return notifier.notifyMedium
	default:
		return false
	}
}

func (notifier *ReminderNotifier) shouldSend(key string, today time.Time) bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if sentOn, ok := notifier.sentDailyNotifications[key]; ok && sameCalendarDay(sentOn, today) {
		return false
	}

	notifier.sentDailyNotifications[key] = today
	if len(notifier.sentDailyNotifications) > 500 {
		notifier.sentDailyNotifications = map[string]time.Time{key: today}
	}
	return true
}

func (notifier *ReminderNotifier) forget(key string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	delete(notifier.sentDailyNotifications, key)
}

var reminderMessageTemplates = map[string]string{
	"reminders.heat.title":             "%s is expected to come into heat on %s.",
	"reminders.birthday.title":         "%s turns %s on %s.",
	"reminders.vaccination.title":      "%s is due for %s on %s.",
	"reminders.pregnancy.title":        "%s is due to whelp around %s.",
	"reminders.matingWindow.title":     "Mating window for %s opens on %s (confidence: %s).",
	"reminders.progesteroneTest.title": "Next progesterone test for %s is due on %s.",
}

// FormatReminderMessage renders a draft as plain English chat text.
func FormatReminderMessage(draft ReminderDraft) string {
	params := draft.Params
	date := draft.DueDate.Format("Jan 2")
	template, ok := reminderMessageTemplates[draft.TitleKey]
	if !ok {
		return fmt.Sprintf("Kennelbook reminder: %s on %s.", draft.TitleKey, date)
	}

	var body string
	switch draft.TitleKey {
	case "reminders.birthday.title":
		body = fmt.Sprintf(template, params["dog"], params["age"], date)
	case "reminders.vaccination.title":
		body = fmt.Sprintf(template, params["dog"], params["vaccine"], date)
	case "reminders.matingWindow.title":
		body = fmt.Sprintf(template, params["dog"], date, params["confidence"])
	default:
		body = fmt.Sprintf(template, params["dog"], date)
	}
	return "Kennelbook reminder: " + body
}

func (notifier *ReminderNotifier) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", notifier.apiBase, notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
