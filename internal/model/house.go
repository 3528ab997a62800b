package model

// The five houses competing in the procession. Every registration row is
// tagged with exactly one of these values and the database enforces the
// same set through a CHECK constraint.
const (
	HouseSpartans = "SPARTANS"
	HouseMughals  = "MUGHALS"
	HouseVikings  = "VIKINGS"
	HouseRajputs  = "RAJPUTS"
	HouseAryans   = "ARYANS"
)

// Houses lists all houses in display order. Iteration order matters for
// the status dashboard and the per-house export sheets.
var Houses = []string{HouseSpartans, HouseMughals, HouseVikings, HouseRajputs, HouseAryans}

// ClassNames enumerates every class a participant can belong to. The set
// mirrors the CHECK constraint on registrations.class.
var ClassNames = []string{
	"AEI", "AIDS", "CIVIL", "CSBS", "CS ALPHA", "CS BETA", "CS GAMMA", "CS DELTA",
	"EEE", "EC ALPHA", "EC BETA", "EC GAMMA", "IT", "MECH ALPHA", "MECH BETA",
}

// TeamSize is the fixed number of participants a house registers in one
// submission. Forms are always exactly this many rows.
const TeamSize = 30

// IsValidHouse reports whether h is one of the five known houses.
func IsValidHouse(h string) bool {
	for _, v := range Houses {
		if v == h {
			return true
		}
	}
	return false
}

// IsValidClass reports whether c is a known class name.
func IsValidClass(c string) bool {
	for _, v := range ClassNames {
		if v == c {
			return true
		}
	}
	return false
}
