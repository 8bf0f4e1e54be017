package exercise

import "time"

// Step is one guidance message and how long to wait before the next one.
type Step struct {
	Text  string
	Delay time.Duration
}

// Exercise is a named, fixed sequence of steps.
type Exercise struct {
	Name  string
	Steps []Step
}

// Names of the relaxation exercises offered in the side panel.
const (
	Breathing478  = "4-7-8 Breathing"
	Progressive   = "Progressive Relaxation"
	Grounding     = "5-4-3-2-1 Grounding"
	InstantCalmID = "Instant Calm"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

var catalog = []Exercise{
	{
		Name: Breathing478,
		Steps: []Step{
			{"🔄 Sit comfortably and relax your shoulders", ms(2000)},
			{"🌬️ Empty your lungs completely", ms(1000)},
			{"🫁 Inhale quietly through nose for 4 seconds...", ms(4000)},
			{"⏳ Hold breath for 7 seconds...", ms(7000)},
			{"😮💨 Exhale completely through mouth for 8 seconds...", ms(8000)},
			{"✨ Repeat this cycle 3-4 times", ms(2000)},
		},
	},
	{
		Name: Progressive,
		Steps: []Step{
			{"🪑 Sit or lie down comfortably", ms(2000)},
			{"👊 Tense your hand muscles for 5 seconds...", ms(5000)},
			{"✋ Release and relax for 30 seconds...", ms(30000)},
			{"👣 Move to feet muscles: Tense...", ms(5000)},
			{"🦶 Release and relax...", ms(30000)},
			{"🔄 Continue through all muscle groups", ms(2000)},
		},
	},
	{
		Name: Grounding,
		Steps: []Step{
			{"🌍 Notice 5 things you can see around you", ms(5000)},
			{"✋ Name 4 things you can touch", ms(4000)},
			{"👂 Identify 3 sounds you can hear", ms(3000)},
			{"👃 Notice 2 things you can smell", ms(2000)},
			{"💪 Name 1 thing you can do right now", ms(1000)},
			{"🌈 Grounding complete. Feel more present?", ms(2000)},
		},
	},
}

var instantCalm = Exercise{
	Name: InstantCalmID,
	Steps: []Step{
		{"🌬️ Take a deep breath", ms(2000)},
		{"🤚 Hold for 3 seconds", ms(3000)},
		{"😮💨 Exhale slowly", ms(4000)},
		{"🔄 Repeat 3 times", ms(1000)},
	},
}

// All returns the named relaxation exercises in panel order.
func All() []Exercise {
	out := make([]Exercise, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the names of the relaxation exercises in panel order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	return names
}

// Get looks up an exercise by name. Instant Calm is included.
func Get(name string) (Exercise, bool) {
	if name == instantCalm.Name {
		return instantCalm, true
	}
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Exercise{}, false
}

// InstantCalm returns the quick stress-relief sequence. It runs without the
// lead-in used for named exercises.
func InstantCalm() Exercise {
	return instantCalm
}

// Duration is the total time from the first step to the completion message.
func (e Exercise) Duration() time.Duration {
	var d time.Duration
	for _, s := range e.Steps {
		d += s.Delay
	}
	return d
}
