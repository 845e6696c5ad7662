package catalog

// Default returns the built-in catalog. Peripheral draws and break chances,
// and the outpost tables other than energy, are placeholder tuning and not
// measured game data; a catalog file overrides any of them.
func Default() Catalog {
	tanks := make(map[TankType]int, len(tankTypes))
	for _, t := range tankTypes {
		tanks[t] = DefaultTankCapacity
	}
	tanks[TankAir] = AirTankCapacity

	boxes := make(map[Ingredient]int, len(ingredients))
	for _, i := range ingredients {
		boxes[i] = DefaultBoxCapacity
	}
	boxes[IngredientWasteSolid] = WasteBoxCapacity
	boxes[IngredientFertilizer] = WasteBoxCapacity
	boxes[IngredientFood] = WasteBoxCapacity

	return Catalog{
		Tanks:       tanks,
		Boxes:       boxes,
		Peripherals: defaultPeripherals(),
		Outposts:    defaultOutposts(),
		DNA:         defaultDNA(),
		FluidRoutes: map[Ingredient]TankType{IngredientWater: TankH2O},
		Tuning:      DefaultTuning(),
	}
}

func defaultPeripherals() map[PeripheralType]PeripheralSpec {
	return map[PeripheralType]PeripheralSpec{
		PeripheralScrubberCO2:   {EnergyDraw: 2, Breakable: true, BreakChance: 500},
		PeripheralCondensator:   {EnergyDraw: 2},
		PeripheralElectrolizer:  {EnergyDraw: 5, Breakable: true, BreakChance: 400},
		PeripheralMethanizer:    {EnergyDraw: 4, Breakable: true, BreakChance: 400},
		PeripheralWaterFilter:   {EnergyDraw: 3, Breakable: true, BreakChance: 600},
		PeripheralBioSolidifier: {EnergyDraw: 3, Breakable: true, BreakChance: 600},
		PeripheralRadiator:      {EnergyDraw: 1},
	}
}

func defaultOutposts() map[OutpostType]OutpostSpec {
	return map[OutpostType]OutpostSpec{
		OutpostEnergy: {
			MaxLevel:   15,
			EnergyBase: 300,
			EnergyMult: 80,
			JobIngredients: map[Ingredient]Scaled{
				IngredientCopper:  {Base: 4, PerLevel: 2},
				IngredientLithium: {Base: 2, PerLevel: 1},
			},
			JobSkills: map[Skill]Scaled{
				SkillElectric: {Base: 1, PerLevel: 1},
			},
		},
		OutpostWater: {
			MaxLevel: 10,
			Yields:   []YieldRow{{Ingredient: IngredientWater, Scaled: Scaled{Base: 10, PerLevel: 5}}},
			JobIngredients: map[Ingredient]Scaled{
				IngredientPolimer: {Base: 3, PerLevel: 1},
				IngredientCeramic: {Base: 2, PerLevel: 1},
			},
			JobSkills: map[Skill]Scaled{
				SkillMechanic: {Base: 1, PerLevel: 1},
			},
		},
		OutpostSilica: {
			MaxLevel: 10,
			Yields:   []YieldRow{{Ingredient: IngredientSilica, Scaled: Scaled{Base: 5, PerLevel: 2}}},
			JobIngredients: map[Ingredient]Scaled{
				IngredientIron:         {Base: 3, PerLevel: 1},
				IngredientCircuitboard: {Base: 1, PerLevel: 1},
			},
			JobSkills: map[Skill]Scaled{
				SkillMaterial: {Base: 1, PerLevel: 1},
			},
		},
		OutpostBiosphere: {
			MaxLevel: 10,
			Yields:   []YieldRow{{Ingredient: IngredientFood, Scaled: Scaled{Base: 6, PerLevel: 3}}},
			JobIngredients: map[Ingredient]Scaled{
				IngredientFertilizer: {Base: 4, PerLevel: 2},
				IngredientPolimer:    {Base: 2, PerLevel: 1},
			},
			JobSkills: map[Skill]Scaled{
				SkillBiologic: {Base: 1, PerLevel: 1},
			},
		},
		OutpostTitanium: {
			MaxLevel: 10,
			Yields:   []YieldRow{{Ingredient: IngredientTitanium, Scaled: Scaled{Base: 3, PerLevel: 1}}},
			JobIngredients: map[Ingredient]Scaled{
				IngredientIron:   {Base: 4, PerLevel: 2},
				IngredientCopper: {Base: 2, PerLevel: 1},
			},
			JobSkills: map[Skill]Scaled{
				SkillMechanic: {Base: 2, PerLevel: 1},
				SkillHandy:    {Base: 1},
			},
		},
	}
}

func defaultDNA() map[DNAOption]DNASpec {
	return map[DNAOption]DNASpec{
		DNAStrawberry: {Perfect: "STRAWBERRY", Output: OutputFood},
		DNATomato:     {Perfect: "TOMATO", Output: OutputFood},
		DNAPotato:     {Perfect: "POTATO", Output: OutputFood},
		DNABanana:     {Perfect: "BANANA", Output: OutputFood},
		DNACabbage:    {Perfect: "CABBAGE", Output: OutputFood},
		DNAPenicillin: {Perfect: "PENICILLIN", Output: OutputMedicine},
	}
}
