package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/kennelbook/internal/models"
)

type ReminderPriority string

const (
	ReminderPriorityHigh   ReminderPriority = "high"
	ReminderPriorityMedium ReminderPriority = "medium"
	ReminderPriorityLow    ReminderPriority = "low"
)

type ReminderCategory string

const (
	ReminderCategoryHeat        ReminderCategory = "heat"
	ReminderCategoryBirthday    ReminderCategory = "birthday"
	ReminderCategoryVaccination ReminderCategory = "vaccination"
	ReminderCategoryPregnancy   ReminderCategory = "pregnancy"
	ReminderCategoryMating      ReminderCategory = "mating"
)

const (
	highPriorityWithinDays   = 7
	mediumPriorityWithinDays = 30

	// A progesterone series older than this belongs to a finished heat and
	// no longer produces test reminders.
	staleProgesteroneSeriesDays = 14
)

// ReminderDraft is handed to the notification and calendar layers, which own
// persistence and localization of the title and description keys.
type ReminderDraft struct {
	ID              string            `json:"id"`
	TitleKey        string            `json:"title_key"`
	DescriptionKey  string            `json:"description_key"`
	DueDate         time.Time         `json:"due_date"`
	DaysUntilDue    int               `json:"days_until_due"`
	Priority        ReminderPriority  `json:"priority"`
	Category        ReminderCategory  `json:"category"`
	RelatedEntityID uint              `json:"related_entity_id"`
	Params          map[string]string `json:"params,omitempty"`
}

var reminderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("kennelbook/reminders"))

func ReminderPriorityFor(daysUntilDue int) ReminderPriority {
	switch {
	case daysUntilDue <= highPriorityWithinDays:
		return ReminderPriorityHigh
	case daysUntilDue <= mediumPriorityWithinDays:
		return ReminderPriorityMedium
	default:
		return ReminderPriorityLow
	}
}

func newReminderDraft(category ReminderCategory, relatedID uint, titleKey string, descriptionKey string, dueDate time.Time, now time.Time, location *time.Location) ReminderDraft {
	due := NormalizeDate(dueDate, location)
	daysUntil := DaysBetween(now, due, location)
	identity := fmt.Sprintf("%s:%d:%s:%s", category, relatedID, titleKey, due.Format(calendarDateLayout))
	return ReminderDraft{
		ID:              uuid.NewSHA1(reminderNamespace, []byte(identity)).String(),
		TitleKey:        titleKey,
		DescriptionKey:  descriptionKey,
		DueDate:         due,
		DaysUntilDue:    daysUntil,
		Priority:        ReminderPriorityFor(daysUntil),
		Category:        category,
		RelatedEntityID: relatedID,
		Params:          map[string]string{"date": due.Format(calendarDateLayout)},
	}
}

// NextBirthday returns the next anniversary of dateOfBirth that is today or
// later. Feb 29 birthdays fall on Mar 1 in non-leap years.
func NextBirthday(dateOfBirth time.Time, now time.Time, location *time.Location) (time.Time, int) {
	birth := NormalizeDate(dateOfBirth, location)
	today := NormalizeDate(now, location)
	years := today.Year() - birth.Year()
	if years < 0 {
		years = 0
	}
	next := birth.AddDate(years, 0, 0)
	for next.Before(today) {
		years++
		next = birth.AddDate(years, 0, 0)
	}
	return next, years
}

// NextVaccinationDue rolls the booster date forward by the interval until it
// is today or later.
func NextVaccinationDue(givenOn time.Time, intervalMonths int, now time.Time, location *time.Location) time.Time {
	if intervalMonths <= 0 {
		intervalMonths = models.DefaultVaccinationIntervalMonths
	}
	given := NormalizeDate(givenOn, location)
	today := NormalizeDate(now, location)
	periods := 1
	next := given.AddDate(0, intervalMonths, 0)
	for next.Before(today) {
		periods++
		next = given.AddDate(0, intervalMonths*periods, 0)
	}
	return next
}

func HeatReminder(dog models.Dog, now time.Time, location *time.Location) (ReminderDraft, bool) {
	nextHeat, ok := PredictNextHeat(dog, now, location)
	if !ok {
		return ReminderDraft{}, false
	}
	draft := newReminderDraft(ReminderCategoryHeat, dog.ID, "reminders.heat.title", "reminders.heat.description", nextHeat, now, location)
	draft.Params["dog"] = dog.Name
	return draft, true
}

func BirthdayReminder(dog models.Dog, now time.Time, location *time.Location) (ReminderDraft, bool) {
	if dog.DateOfBirth.IsZero() {
		return ReminderDraft{}, false
	}
	birthday, age := NextBirthday(dog.DateOfBirth, now, location)
	draft := newReminderDraft(ReminderCategoryBirthday, dog.ID, "reminders.birthday.title", "reminders.birthday.description", birthday, now, location)
	draft.Params["dog"] = dog.Name
	draft.Params["age"] = fmt.Sprintf("%d", age)
	return draft, true
}

func VaccinationReminder(dog models.Dog, vaccination models.Vaccination, now time.Time, location *time.Location) ReminderDraft {
	due := NextVaccinationDue(vaccination.GivenOn, vaccination.IntervalMonths, now, location)
	draft := newReminderDraft(ReminderCategoryVaccination, vaccination.ID, "reminders.vaccination.title", "reminders.vaccination.description", due, now, location)
	draft.Params["dog"] = dog.Name
	draft.Params["vaccine"] = vaccination.Name
	return draft
}

// DueDateReminder is skipped once the due band has passed.
func DueDateReminder(dam models.Dog, breeding models.Breeding, now time.Time, location *time.Location) (ReminderDraft, bool) {
	dueDate := PregnancyDueDate(breeding.MatingDate, location)
	if DaysBetween(dueDate, now, location) > dueDateToleranceDays {
		return ReminderDraft{}, false
	}
	draft := newReminderDraft(ReminderCategoryPregnancy, breeding.ID, "reminders.pregnancy.title", "reminders.pregnancy.description", dueDate, now, location)
	draft.Params["dog"] = dam.Name
	return draft, true
}

// MatingWindowReminder points at the window start while it is still ahead,
// otherwise at the next recommended progesterone test.
func MatingWindowReminder(dog models.Dog, window MatingWindowEstimate, now time.Time, location *time.Location) (ReminderDraft, bool) {
	if window.SurgeDetected && window.StartDate != nil && window.EndDate != nil && !now.After(*window.EndDate) {
		draft := newReminderDraft(ReminderCategoryMating, dog.ID, "reminders.matingWindow.title", "reminders.matingWindow.description", *window.StartDate, now, location)
		draft.Params["dog"] = dog.Name
		draft.Params["confidence"] = string(window.Confidence)
		return draft, true
	}
	if window.LastTestDate == nil || DaysBetween(*window.LastTestDate, now, location) > staleProgesteroneSeriesDays {
		return ReminderDraft{}, false
	}
	nextTest, ok := NextTestRecommendation(window, *window.LastTestDate, now)
	if !ok {
		return ReminderDraft{}, false
	}
	draft := newReminderDraft(ReminderCategoryMating, dog.ID, "reminders.progesteroneTest.title", "reminders.progesteroneTest.description", nextTest, now, location)
	draft.Params["dog"] = dog.Name
	return draft, true
}

type DogReminderInput struct {
	Dog          models.Dog
	Vaccinations []models.Vaccination
	Breedings    []models.Breeding
	Readings     []models.HormoneReading
}

// BuildDogReminders composes every applicable draft for one dog, ordered by
// due date.
func BuildDogReminders(input DogReminderInput, now time.Time, location *time.Location) []ReminderDraft {
	drafts := make([]ReminderDraft, 0, 4+len(input.Vaccinations)+len(input.Breedings))

	if draft, ok := BirthdayReminder(input.Dog, now, location); ok {
		drafts = append(drafts, draft)
	}
	if draft, ok := HeatReminder(input.Dog, now, location); ok {
		drafts = append(drafts, draft)
	}
	for _, vaccination := range input.Vaccinations {
		drafts = append(drafts, VaccinationReminder(input.Dog, vaccination, now, location))
	}
	if input.Dog.IsFemale() {
		for _, breeding := range input.Breedings {
			if draft, ok := DueDateReminder(input.Dog, breeding, now, location); ok {
				drafts = append(drafts, draft)
			}
		}
		if len(input.Readings) > 0 {
			window := EstimateMatingWindow(CurrentCycleReadings(input.Readings, input.Dog.HeatHistory, location))
			if draft, ok := MatingWindowReminder(input.Dog, window, now, location); ok {
				drafts = append(drafts, draft)
			}
		}
	}

	SortReminderDrafts(drafts)
	return drafts
}

func SortReminderDrafts(drafts []ReminderDraft) {
	sort.SliceStable(drafts, func(i, j int) bool {
		if !drafts[i].DueDate.Equal(drafts[j].DueDate) {
			return drafts[i].DueDate.Before(drafts[j].DueDate)
		}
		if drafts[i].Category != drafts[j].Category {
			return drafts[i].Category < drafts[j].Category
		}
		return drafts[i].RelatedEntityID < drafts[j].RelatedEntityID
	})
}
