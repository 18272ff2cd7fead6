package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type reminderSourceStub struct {
	drafts []ReminderDraft
	err    error
}

func (stub reminderSourceStub) KennelReminders(now time.Time) ([]ReminderDraft, error) {
	return stub.drafts, stub.err
}

type telegramRecorder struct {
	mu       sync.Mutex
	messages []string
	paths    []string
	status   int
}

func (recorder *telegramRecorder) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.messages = append(recorder.messages, r.PostForm.Get("text"))
	recorder.paths = append(recorder.paths, r.URL.Path)
	if recorder.status != 0 {
		w.WriteHeader(recorder.status)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (recorder *telegramRecorder) count() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.messages)
}

func newNotifierForTest(t *testing.T, drafts []ReminderDraft, notifyMedium bool) (*ReminderNotifier, *telegramRecorder) {
	t.Helper()
	recorder := &telegramRecorder{}
	server := httptest.NewServer(http.HandlerFunc(recorder.handler))
	t.Cleanup(server.Close)

	notifier := NewReminderNotifier(reminderSourceStub{drafts: drafts}, ReminderNotifierConfig{
		BotToken:     "token",
		ChatID:       "42",
		APIBase:      server.URL + "/",
		NotifyMedium: notifyMedium,
	}, time.UTC)
	notifier.now = func() time.Time { return mustParseInstant(t, "2026-03-01T09:00:00Z") }
	return notifier, recorder
}

func testDraft(id string, priority ReminderPriority, daysUntil int) ReminderDraft {
	return ReminderDraft{
		ID:           id,
		TitleKey:     "reminders.heat.title",
		DueDate:      time.Date(2026, time.March, 1+daysUntil, 0, 0, 0, 0, time.UTC),
		DaysUntilDue: daysUntil,
		Priority:     priority,
		Category:     ReminderCategoryHeat,
		Params:       map[string]string{"dog": "Maple"},
	}
}

func TestReminderNotifierDisabledWithoutCredentials(t *testing.T) {
	notifier := NewReminderNotifier(reminderSourceStub{}, ReminderNotifierConfig{BotToken: "token"}, time.UTC)
	if notifier.Enabled() {
		t.Fatal("expected notifier to be disabled without a chat id")
	}
}

func TestReminderNotifierSendsHighPriorityOncePerDay(t *testing.T) {
	drafts := []ReminderDraft{
		testDraft("high", ReminderPriorityHigh, 3),
		testDraft("medium", ReminderPriorityMedium, 20),
		testDraft("low", ReminderPriorityLow, 60),
		testDraft("overdue", ReminderPriorityHigh, -1),
	}
	notifier, recorder := newNotifierForTest(t, drafts, false)

	if sent := notifier.RunOnce(context.Background()); sent != 1 {
		t.Fatalf("expected 1 message sent, got %d", sent)
	}
	if sent := notifier.RunOnce(context.Background()); sent != 0 {
		t.Fatalf("expected duplicate run to send nothing, got %d", sent)
	}
	if recorder.count() != 1 {
		t.Fatalf("expected 1 telegram request, got %d", recorder.count())
	}
	if recorder.paths[0] != "/bottoken/sendMessage" {
		t.Fatalf("expected /bottoken/sendMessage, got %s", recorder.paths[0])
	}
	if !strings.HasPrefix(recorder.messages[0], "Kennelbook reminder: Maple") {
		t.Fatalf("expected rendered reminder text, got %q", recorder.messages[0])
	}

	notifier.now = func() time.Time { return mustParseInstant(t, "2026-03-02T09:00:00Z") }
	if sent := notifier.RunOnce(context.Background()); sent != 1 {
		t.Fatalf("expected the next day to resend, got %d", sent)
	}
}

func TestReminderNotifierIncludesMediumWhenConfigured(t *testing.T) {
	drafts := []ReminderDraft{
		testDraft("high", ReminderPriorityHigh, 3),
		testDraft("medium", ReminderPriorityMedium, 20),
	}
	notifier, _ := newNotifierForTest(t, drafts, true)

	if sent := notifier.RunOnce(context.Background()); sent != 2 {
		t.Fatalf("expected 2 messages sent, got %d", sent)
	}
}

func TestReminderNotifierRetriesFailedSends(t *testing.T) {
	notifier, recorder := newNotifierForTest(t, []ReminderDraft{testDraft("high", ReminderPriorityHigh, 1)}, false)
	recorder.status = http.StatusBadGateway

	if sent := notifier.RunOnce(context.Background()); sent != 0 {
		t.Fatalf("expected failed send to count as 0, got %d", sent)
	}

	recorder.mu.Lock()
	recorder.status = 0
	recorder.mu.Unlock()
	if sent := notifier.RunOnce(context.Background()); sent != 1 {
		t.Fatalf("expected retry to deliver, got %d", sent)
	}
}

func TestFormatReminderMessage(t *testing.T) {
	draft := ReminderDraft{
		TitleKey: "reminders.vaccination.title",
		DueDate:  time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		Params:   map[string]string{"dog": "Rook", "vaccine": "Rabies"},
	}
	message := FormatReminderMessage(draft)
	if message != "Kennelbook reminder: Rook is due for Rabies on Apr 10." {
		t.Fatalf("unexpected message %q", message)
	}

	unknown := FormatReminderMessage(ReminderDraft{TitleKey: "reminders.custom", DueDate: draft.DueDate})
	if unknown != "Kennelbook reminder: reminders.custom on Apr 10." {
		t.Fatalf("unexpected fallback message %q", unknown)
	}
}
