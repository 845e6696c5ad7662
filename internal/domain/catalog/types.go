package catalog

type TankType string

const (
	TankAir         TankType = "air"
	TankO2          TankType = "o2"
	TankCO2         TankType = "co2"
	TankN2          TankType = "n2"
	TankH2          TankType = "h2"
	TankH2O         TankType = "h2o"
	TankCH4         TankType = "ch4"
	TankWasteLiquid TankType = "wasteLiquid"
)

var tankTypes = []TankType{TankAir, TankO2, TankCO2, TankN2, TankH2, TankH2O, TankCH4, TankWasteLiquid}

func TankTypes() []TankType {
	return append([]TankType(nil), tankTypes...)
}

func (t TankType) Valid() bool {
	for _, k := range tankTypes {
		if k == t {
			return true
		}
	}
	return false
}

type Ingredient string

const (
	IngredientAluminium    Ingredient = "aluminium"
	IngredientCopper       Ingredient = "copper"
	IngredientIron         Ingredient = "iron"
	IngredientLithium      Ingredient = "lithium"
	IngredientSilica       Ingredient = "silica"
	IngredientPolimer      Ingredient = "polimer"
	IngredientCeramic      Ingredient = "ceramic"
	IngredientCircuitboard Ingredient = "circuitboard"
	IngredientWater        Ingredient = "water"
	IngredientFood         Ingredient = "food"
	IngredientWasteSolid   Ingredient = "wasteSolid"
	IngredientFertilizer   Ingredient = "fertilizer"
	IngredientTitanium     Ingredient = "titanium"
)

var ingredients = []Ingredient{
	IngredientAluminium, IngredientCopper, IngredientIron, IngredientLithium, IngredientSilica,
	IngredientPolimer, IngredientCeramic, IngredientCircuitboard, IngredientWater, IngredientFood,
	IngredientWasteSolid, IngredientFertilizer, IngredientTitanium,
}

func Ingredients() []Ingredient {
	return append([]Ingredient(nil), ingredients...)
}

func (i Ingredient) Valid() bool {
	for _, k := range ingredients {
		if k == i {
			return true
		}
	}
	return false
}

type Skill string

const (
	SkillSystemOS   Skill = "systemOS"
	SkillElectric   Skill = "electric"
	SkillMechanic   Skill = "mechanic"
	SkillBiologic   Skill = "biologic"
	SkillMaterial   Skill = "material"
	SkillDatacenter Skill = "datacenter"
	SkillMedic      Skill = "medic"
	SkillHandy      Skill = "handy"
)

var skills = []Skill{SkillSystemOS, SkillElectric, SkillMechanic, SkillBiologic, SkillMaterial, SkillDatacenter, SkillMedic, SkillHandy}

func Skills() []Skill {
	return append([]Skill(nil), skills...)
}

func (s Skill) Valid() bool {
	for _, k := range skills {
		if k == s {
			return true
		}
	}
	return false
}

type PeripheralType string

const (
	PeripheralScrubberCO2   PeripheralType = "scrubberCO2"
	PeripheralCondensator   PeripheralType = "condensator"
	PeripheralElectrolizer  PeripheralType = "electrolizer"
	PeripheralMethanizer    PeripheralType = "methanizer"
	PeripheralWaterFilter   PeripheralType = "waterFilter"
	PeripheralBioSolidifier PeripheralType = "bioSolidifier"
	PeripheralRadiator      PeripheralType = "radiator"
)

var peripheralTypes = []PeripheralType{
	PeripheralScrubberCO2, PeripheralCondensator, PeripheralElectrolizer, PeripheralMethanizer,
	PeripheralWaterFilter, PeripheralBioSolidifier, PeripheralRadiator,
}

func PeripheralTypes() []PeripheralType {
	return append([]PeripheralType(nil), peripheralTypes...)
}

func (p PeripheralType) Valid() bool {
	for _, k := range peripheralTypes {
		if k == p {
			return true
		}
	}
	return false
}

type OutpostType string

const (
	OutpostEnergy    OutpostType = "energy"
	OutpostWater     OutpostType = "water"
	OutpostSilica    OutpostType = "silica"
	OutpostBiosphere OutpostType = "biosphere"
	OutpostTitanium  OutpostType = "titanium"
)

var outpostTypes = []OutpostType{OutpostEnergy, OutpostWater, OutpostSilica, OutpostBiosphere, OutpostTitanium}

func OutpostTypes() []OutpostType {
	return append([]OutpostType(nil), outpostTypes...)
}

func (o OutpostType) Valid() bool {
	for _, k := range outpostTypes {
		if k == o {
			return true
		}
	}
	return false
}

type DNAOption string

const (
	DNAStrawberry DNAOption = "strawberry"
	DNATomato     DNAOption = "tomato"
	DNAPotato     DNAOption = "potato"
	DNABanana     DNAOption = "banana"
	DNACabbage    DNAOption = "cabbage"
	DNAPenicillin DNAOption = "penicillin"
)

var dnaOptions = []DNAOption{DNAStrawberry, DNATomato, DNAPotato, DNABanana, DNACabbage, DNAPenicillin}

func DNAOptions() []DNAOption {
	return append([]DNAOption(nil), dnaOptions...)
}

func (d DNAOption) Valid() bool {
	for _, k := range dnaOptions {
		if k == d {
			return true
		}
	}
	return false
}

type OutputKind string

const (
	OutputFood     OutputKind = "food"
	OutputMedicine OutputKind = "medicine"
)
