package model

type Unit string

const (
	UnitCount      Unit = "buc"
	UnitGrams      Unit = "g"
	UnitKilograms  Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
)

// Units lists the vocabulary in the order forms present it.
var Units = []Unit{UnitCount, UnitGrams, UnitKilograms, UnitMilliliter, UnitLiter}

func (u Unit) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}
