package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/mwhitlock/aviary/internal/constants"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/utils"
)

// Scheduler derives the day's care tasks from the current flock and
// medication schedules. Derivation is a pure projection: it never mutates
// its inputs, and for a fixed (birds, medications, completed, date) tuple it
// always produces the same ordered id list.
type Scheduler struct {
	feedTime string // HH:MM, one feeding reminder per bird per day
}

// New creates a Scheduler. An empty or malformed feedTime falls back to the
// default feeding reminder time.
func New(feedTime string) *Scheduler {
	if !utils.ValidateTimeFormat(feedTime) {
		feedTime = constants.DefaultFeedTime
	}
	return &Scheduler{feedTime: feedTime}
}

// MedicationTaskID returns the occurrence key for dose doseIndex of a
// medication on the given date.
func MedicationTaskID(medicationID, dateKey string, doseIndex int) string {
	return fmt.Sprintf("%s-%s-%d", medicationID, dateKey, doseIndex)
}

// DietTaskID returns the occurrence key for a bird's daily feeding reminder.
func DietTaskID(birdID, dateKey string) string {
	return fmt.Sprintf("%s-%s-diet", birdID, dateKey)
}

// DeriveTasks computes the ordered task list for the calendar day of now.
//
// Every active medication contributes one task per entry in its times array;
// the frequency label is descriptive only and is not re-validated here.
// Every bird contributes one feeding task at the configured feed time,
// independent of any diet logs. Completion is a membership test against the
// completed occurrence-id set.
//
// The result is sorted ascending by due time; dueTime strings are zero-padded
// HH:MM so lexicographic order is chronological order. The sort is stable, so
// ties keep their derivation order (medications before birds, input order
// within each).
func (s *Scheduler) DeriveTasks(birds []models.Bird, medications []models.Medication, completed map[string]bool, now time.Time) []models.Task {
	dateKey := utils.DateKey(now)
	tasks := make([]models.Task, 0, len(medications)+len(birds))

	for _, med := range medications {
		if !med.IsActive {
			continue
		}
		for i, doseTime := range med.Times {
			id := MedicationTaskID(med.ID, dateKey, i)
			tasks = append(tasks, models.Task{
				ID:           id,
				BirdID:       med.BirdID,
				Title:        fmt.Sprintf("Medicine: %s", med.Name),
				Type:         models.TaskTypeMedication,
				DueTime:      doseTime,
				IsCompleted:  completed[id],
				MedicationID: med.ID,
			})
		}
	}

	for _, bird := range birds {
		id := DietTaskID(bird.ID, dateKey)
		tasks = append(tasks, models.Task{
			ID:          id,
			BirdID:      bird.ID,
			Title:       fmt.Sprintf("Feed %s", bird.Name),
			Type:        models.TaskTypeDiet,
			DueTime:     s.feedTime,
			IsCompleted: completed[id],
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueTime < tasks[j].DueTime
	})

	return tasks
}

// CompletedSet converts the persisted completed-id list into the membership
// set DeriveTasks consumes.
func CompletedSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
