package domain

// PhaseGroup names a family of mutually exclusive finishes resolved at draw time
type PhaseGroup string

const (
	PhaseGroupNone         PhaseGroup = ""
	PhaseGroupDoppler      PhaseGroup = "doppler"
	PhaseGroupGammaDoppler PhaseGroup = "gamma_doppler"
)

var phaseGroups = map[PhaseGroup][]string{
	PhaseGroupDoppler: {
		"Phase 1", "Phase 2", "Phase 3", "Phase 4",
		"Ruby", "Sapphire", "Black Pearl",
	},
	PhaseGroupGammaDoppler: {
		"Phase 1", "Phase 2", "Phase 3", "Phase 4",
		"Emerald",
	},
}

// Phases lists the display names of every phase in the group
func (g PhaseGroup) Phases() []string {
	return phaseGroups[g]
}

// Valid reports whether the group is empty or known
func (g PhaseGroup) Valid() bool {
	if g == PhaseGroupNone {
		return true
	}
	_, ok := phaseGroups[g]
	return ok
}
