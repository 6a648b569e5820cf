package workouts

import (
	"time"

	"github.com/mpetersen/fitlog/pkg/fitlog/models"
)

// weeklySchedule is the static training split. Sunday is a full rest
// day and has no entry. Read-only after init; no locking needed.
var weeklySchedule = map[time.Weekday]models.WorkoutType{
	time.Monday:    models.WorkoutChestTriceps,
	time.Tuesday:   models.WorkoutCardio,
	time.Wednesday: models.WorkoutShouldersBiceps,
	time.Thursday:  models.WorkoutCardio,
	time.Friday:    models.WorkoutVolume,
	time.Saturday:  models.WorkoutActiveRest,
}

// ScheduledWorkout returns the workout type the weekly split assigns
// to the given date. ok is false on rest days.
func ScheduledWorkout(date time.Time) (models.WorkoutType, bool) {
	wt, ok := weeklySchedule[date.Weekday()]
	return wt, ok
}

// activityTypeMap translates the free-text activity names sent by
// phone health apps onto the fixed workout taxonomy. Static lookup,
// not configurable.
var activityTypeMap = map[string]models.WorkoutType{
	"Running":                          models.WorkoutCardio,
	"Cycling":                          models.WorkoutCardio,
	"Elliptical":                       models.WorkoutCardio,
	"Swimming":                         models.WorkoutCardio,
	"Rowing":                           models.WorkoutCardio,
	"High Intensity Interval Training": models.WorkoutCardio,
	"Stair Climbing":                   models.WorkoutCardio,
	"Walking":                          models.WorkoutActiveRest,
	"Hiking":                           models.WorkoutActiveRest,
	"Yoga":                             models.WorkoutActiveRest,
	"Flexibility":                      models.WorkoutActiveRest,
	"Cooldown":                         models.WorkoutActiveRest,
	"Mind and Body":                    models.WorkoutActiveRest,
}

// MapActivity resolves a phone app's activity name to a workout type.
// Exact taxonomy values pass through. Known cardio/recovery activity
// names map directly. Everything else ("Traditional Strength
// Training" and friends) takes whatever the weekly split assigns to
// that date, falling back to volume on rest days.
func MapActivity(activity string, date time.Time) models.WorkoutType {
	if wt := models.WorkoutType(activity); wt.IsValid() {
		return wt
	}
	if wt, ok := activityTypeMap[activity]; ok {
		return wt
	}
	if wt, ok := ScheduledWorkout(date); ok {
		return wt
	}
	return models.WorkoutVolume
}
