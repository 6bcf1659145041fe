package models

// ClassBand is a fee band covering a range of grade levels.
type ClassBand string

const (
	BandNursery ClassBand = "nursery"
	BandPrimary ClassBand = "primary"
	BandMiddle  ClassBand = "middle"
	BandHigh    ClassBand = "high"
	BandSenior  ClassBand = "senior"
)

type TransportZone string

const (
	TransportNone TransportZone = "no"
	TransportNear TransportZone = "near"
	TransportFar  TransportZone = "far"
)

type FeeBand struct {
	Base float64 `json:"base"`
	Name string  `json:"name"`
}

// FeeSchedule holds the published fee structure. The numbers are fixed school
// policy for the session and must be reproduced exactly.
var FeeSchedule = map[ClassBand]FeeBand{
	BandNursery: {Base: 15000, Name: "Nursery - UKG"},
	BandPrimary: {Base: 17000, Name: "Class 1 - 5"},
	BandMiddle:  {Base: 19500, Name: "Class 6 - 8"},
	BandHigh:    {Base: 22000, Name: "Class 9 - 10"},
	BandSenior:  {Base: 25000, Name: "Class 11 - 12"},
}

var TransportFees = map[TransportZone]float64{
	TransportNone: 0,
	TransportNear: 4000,
	TransportFar:  6000,
}

// Tuition/other split applied to the base fee in estimates.
const (
	TuitionShare      = 0.85
	OtherChargesShare = 0.15
)

// BandForClass maps a grade level to its fee band. Stream suffixes
// ("11-Science" etc.) fall into the same band as the plain class. The
// band keys themselves are accepted too, the public estimator submits
// them directly.
func BandForClass(class string) (ClassBand, bool) {
	switch class {
	case "nursery", "primary", "middle", "high", "senior":
		return ClassBand(class), true
	case "Nursery", "LKG", "UKG":
		return BandNursery, true
	case "1", "2", "3", "4", "5":
		return BandPrimary, true
	case "6", "7", "8":
		return BandMiddle, true
	case "9", "9-Arts", "9-Home Science", "9-Science", "10":
		return BandHigh, true
	case "11-Arts", "11-Commerce", "11-Science", "12-Arts", "12-Commerce", "12-Science":
		return BandSenior, true
	}
	return "", false
}
