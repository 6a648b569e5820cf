package workouts

import "github.com/mpetersen/fitlog/pkg/fitlog/models"

// Exercise describes one entry in the lifting catalog, including the
// year's linear progression targets.
type Exercise struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	DefaultSets  int    `json:"default_sets"`
	DefaultReps  int    `json:"default_reps"`
	StartWeight  int    `json:"start_weight"`  // lbs at the start of the plan year
	TargetWeight int    `json:"target_weight"` // lbs at year end
}

// Exercises is the static lifting catalog for the plan year.
var Exercises = map[string]Exercise{
	// Chest
	"flat_db_press":    {ID: "flat_db_press", Name: "Flat Dumbbell Press", Category: "chest", DefaultSets: 4, DefaultReps: 10, StartWeight: 45, TargetWeight: 65},
	"incline_db_press": {ID: "incline_db_press", Name: "Incline Dumbbell Press", Category: "chest", DefaultSets: 4, DefaultReps: 10, StartWeight: 35, TargetWeight: 55},
	"cable_flyes":      {ID: "cable_flyes", Name: "Cable Flyes", Category: "chest", DefaultSets: 3, DefaultReps: 12, StartWeight: 20, TargetWeight: 30},

	// Triceps
	"skull_crushers":   {ID: "skull_crushers", Name: "Skull Crushers", Category: "triceps", DefaultSets: 3, DefaultReps: 12, StartWeight: 25, TargetWeight: 40},
	"tricep_pushdowns": {ID: "tricep_pushdowns", Name: "Tricep Pushdowns", Category: "triceps", DefaultSets: 3, DefaultReps: 12, StartWeight: 35, TargetWeight: 50},
	"overhead_tricep":  {ID: "overhead_tricep", Name: "Overhead Tricep Extension", Category: "triceps", DefaultSets: 3, DefaultReps: 12, StartWeight: 25, TargetWeight: 35},

	// Shoulders
	"lateral_raises":  {ID: "lateral_raises", Name: "Lateral Raises", Category: "shoulders", DefaultSets: 4, DefaultReps: 12, StartWeight: 15, TargetWeight: 25},
	"rear_delt_flyes": {ID: "rear_delt_flyes", Name: "Rear Delt Flyes", Category: "shoulders", DefaultSets: 3, DefaultReps: 12, StartWeight: 12, TargetWeight: 20},
	"shoulder_press":  {ID: "shoulder_press", Name: "Dumbbell Shoulder Press", Category: "shoulders", DefaultSets: 4, DefaultReps: 10, StartWeight: 30, TargetWeight: 45},
	"front_raises":    {ID: "front_raises", Name: "Front Raises", Category: "shoulders", DefaultSets: 3, DefaultReps: 12, StartWeight: 12, TargetWeight: 20},

	// Biceps
	"curls":          {ID: "curls", Name: "Dumbbell Curls", Category: "biceps", DefaultSets: 4, DefaultReps: 10, StartWeight: 25, TargetWeight: 40},
	"hammer_curls":   {ID: "hammer_curls", Name: "Hammer Curls", Category: "biceps", DefaultSets: 3, DefaultReps: 10, StartWeight: 20, TargetWeight: 35},
	"preacher_curls": {ID: "preacher_curls", Name: "Preacher Curls", Category: "biceps", DefaultSets: 3, DefaultReps: 10, StartWeight: 20, TargetWeight: 30},

	// Compound / volume
	"bench_press":  {ID: "bench_press", Name: "Barbell Bench Press", Category: "compound", DefaultSets: 4, DefaultReps: 8, StartWeight: 135, TargetWeight: 185},
	"rows":         {ID: "rows", Name: "Dumbbell Rows", Category: "compound", DefaultSets: 4, DefaultReps: 10, StartWeight: 40, TargetWeight: 60},
	"lat_pulldown": {ID: "lat_pulldown", Name: "Lat Pulldown", Category: "compound", DefaultSets: 4, DefaultReps: 10, StartWeight: 100, TargetWeight: 140},
}

// templates lists the exercise order per lifting day. Cardio and
// active rest have no structured exercises.
var templates = map[models.WorkoutType][]string{
	models.WorkoutChestTriceps: {
		"flat_db_press", "incline_db_press", "cable_flyes",
		"skull_crushers", "tricep_pushdowns", "overhead_tricep",
	},
	models.WorkoutShouldersBiceps: {
		"shoulder_press", "lateral_raises", "rear_delt_flyes",
		"front_raises", "curls", "hammer_curls",
	},
	models.WorkoutVolume: {
		"bench_press", "rows", "lat_pulldown",
		"shoulder_press", "curls", "skull_crushers",
	},
	models.WorkoutCardio:     {},
	models.WorkoutActiveRest: {},
}

// TemplateFor returns the ordered exercises for a workout type.
func TemplateFor(workoutType models.WorkoutType) []Exercise {
	ids := templates[workoutType]
	exercises := make([]Exercise, 0, len(ids))
	for _, id := range ids {
		if ex, ok := Exercises[id]; ok {
			exercises = append(exercises, ex)
		}
	}
	return exercises
}

// MonthlyLiftTargets computes each exercise's target for a month of
// the plan year, interpolating linearly from start to year-end weight.
func MonthlyLiftTargets(month int) models.LiftTargets {
	targets := models.LiftTargets{}
	for id, ex := range Exercises {
		if ex.TargetWeight == 0 || ex.StartWeight == 0 {
			continue
		}
		monthly := float64(ex.TargetWeight-ex.StartWeight) / 12.0
		targets[id] = ex.StartWeight + int(monthly*float64(month)+0.5)
	}
	return targets
}
