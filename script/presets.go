package script

// DefaultPreset is used when the CLI is run without arguments.
const DefaultPreset = "alien-bases"

// Presets maps friendly names to built-in video scripts.
var Presets = map[string]Job{
	"alien-bases": {
		Title: "Secret Underground\nAlien Bases",
		Countries: []string{
			"United States of America",
			"Russia",
			"Brazil",
			"Australia",
			"India",
		},
	},
	"coffee": {
		Title: "Countries That Drink\nThe Most Coffee",
		Countries: []string{
			"Finland",
			"Norway",
			"Iceland",
			"Denmark",
			"Netherlands",
		},
		Captions: Captions{
			Intro: "Brewing the data...",
			Scan:  "Measuring: %s",
			Lock:  "CAFFEINATED: %s",
			Outro: "Ranking Complete",
			Final: "Time for a refill...",
		},
	},
}

// Preset resolves a preset name to a copy of its job.
func Preset(name string) (Job, bool) {
	j, ok := Presets[name]
	return j, ok
}

// PresetNames lists the available presets.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
