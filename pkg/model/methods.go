package model

// FastingMethods is the fixed catalog of built-in fasting protocols.
// Selection is by ID; entries are never mutated.
var FastingMethods = []FastingMethod{
	{
		ID:           "16_8",
		Name:         "16:8",
		FastingHours: 16,
		EatingHours:  8,
		Description:  "Fast for 16 hours, eat within 8 hours. Most popular method for beginners.",
	},
	{
		ID:           "18_6",
		Name:         "18:6",
		FastingHours: 18,
		EatingHours:  6,
		Description:  "Fast for 18 hours, eat within 6 hours. Intermediate level fasting.",
	},
	{
		ID:           "20_4",
		Name:         "20:4",
		FastingHours: 20,
		EatingHours:  4,
		Description:  "Fast for 20 hours, eat within 4 hours. Also known as Warrior Diet.",
	},
	{
		ID:           "omad",
		Name:         "OMAD",
		FastingHours: 23,
		EatingHours:  1,
		Description:  "One Meal A Day. Fast for 23 hours, eat within 1 hour window.",
	},
}

// DefaultFastingMethod returns the catalog entry used when no preference is set
func DefaultFastingMethod() FastingMethod {
	return FastingMethods[0]
}

// FastingMethodByID looks up a catalog entry by ID
func FastingMethodByID(id string) (FastingMethod, bool) {
	for _, m := range FastingMethods {
		if m.ID == id {
			return m, true
		}
	}
	return FastingMethod{}, false
}
