package features

import "regexp"

// Feature is a named cue recognised in a description.
type Feature struct {
	Name    string
	Pattern *regexp.Regexp
}

// Tier groups the cues that signal one quality level.
type Tier struct {
	Level    int
	Features []Feature
}

func feature(name, pattern string) Feature {
	return Feature{Name: name, Pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// tiers is ordered from the best quality level to the worst.
var tiers = []Tier{
	{Level: 1, Features: []Feature{
		feature("elite_house", `premium class|VIP class|elite house`),
		feature("marble_halls", `marble halls|marble staircase`),
		feature("design_project_gift", `design project.*gift`),
		feature("smart_home", `smart home`),
		feature("sauna", `sauna`),
		feature("sea_view", `sea view|direct sea view`),
		feature("panoramic_windows", `panoramic windows`),
		feature("yacht_club", `yacht club`),
		feature("spa_complex", `spa complex`),
		feature("pool", `pool|swimming pool`),
		feature("marble", `marble|marble window sills`),
		feature("seaside_area", `seaside area|Arcadia|French Boulevard`),
		feature("city_center", `city center|historical center`),
		feature("walking_distance_sea", `walking distance to.*sea|5 minutes.*sea`),
	}},
	{Level: 2, Features: []Feature{
		feature("full_renovation", `fully renovated|overhaul|high-quality repair|designer renovation|eurorepair|expensive renovation`),
		feature("high_ceilings", `high ceilings`),
		feature("underground_parking", `underground parking`),
		feature("guarded_territory", `closed.*territory|guarded territory|24-hour security`),
		feature("concierge", `concierge`),
		feature("new_elevator", `new elevator|high-speed elevators|silent elevators`),
		feature("heated_floors", `heated floors|warm floors`),
		feature("individual_gas_heating", `AGV|individual gas heating|2-circuit boiler`),
		feature("brick_house", `brick house|red brick`),
		feature("new_house", `new house|recently built|commissioned`),
		feature("parquet", `parquet|oak parquet`),
		feature("spanish_tiles", `Spanish tiles`),
		feature("decorative_plaster", `decorative plaster`),
		feature("natural_wood", `natural wood|wood doors`),
		feature("fitness_club", `fitness club`),
		feature("shopping_center", `shopping center`),
	}},
	{Level: 3, Features: []Feature{
		feature("cosmetic_repair", `cosmetic repairs`),
		feature("glazed_balcony", `glazed balcony`),
		feature("glazed_loggia", `glazed loggia|insulated loggia`),
		feature("built_in_kitchen", `built-in kitchen|wood kitchen`),
		feature("kitchen_studio", `kitchen-studio|kitchen-living room`),
		feature("fully_furnished", `fully furnished|all furniture|fully equipped with.*furniture`),
		feature("fully_equipped_appliances", `appliances included|fully equipped with.*appliances`),
		feature("intercom", `intercom|code lock`),
		feature("video_surveillance", `video surveillance|cameras`),
		feature("open_parking", `open parking|guest parking|parking space`),
		feature("playground", `playground`),
		feature("supermarket", `supermarket`),
		feature("school", `school`),
		feature("kindergarten", `kindergarten`),
		feature("park", `park|Victory Park|Shevchenko Park`),
		feature("mpo_windows", `MPO|reinforced-plastic windows|metal-plastic windows`),
		feature("laminate", `laminate`),
		feature("quiet_place", `quiet place|away from roadway`),
		feature("near_park_sanatorium", `near park|sanatorium`),
	}},
	{Level: 4, Features: []Feature{
		feature("living_condition", `living condition`),
		feature("partly_furnished", `furniture included`),
		feature("courtyard_view", `courtyard view|windows overlook.*courtyard`),
		feature("city_view", `city view`),
		feature("park_view", `park view|view of.*park`),
		feature("market", `market|bazaar`),
		feature("clinic_hospital", `clinic|hospital`),
		feature("transport_interchange", `transport interchange`),
		feature("cooperative_house", `cooperative house`),
		feature("redevelopment_possible", `redevelopment|re-planned|free layout`),
		feature("extra_space", `extra room|possibility of expansion|attic as a gift`),
		feature("free_storage_room", `storage room.*gift`),
		feature("installment_plan", `installment plan`),
	}},
	{Level: 5, Features: []Feature{
		feature("needs_renovation", `needs repair|for renovation`),
		feature("builder_condition", `condition from builders`),
		feature("commercial_use", `for commerce`),
		feature("heat_meter", `heat meter`),
		feature("heat_pumps", `heat pumps`),
		feature("own_boiler_room", `own boiler room|roof boiler room`),
		feature("ramp", `ramp`),
		feature("wheelchair_storage", `public wheelchair`),
		feature("ecologically_clean_area", `ecologically clean area`),
		feature("sports_ground", `sports ground`),
		feature("restaurant_cafe", `restaurant|coffee shop`),
		feature("terrace", `terrace|large terrace`),
		feature("bay_window", `bay window`),
		feature("dressing_room", `wardrobe|dressing room`),
		feature("storage_room", `storage room|interfloor storage`),
	}},
}

// Tiers returns the pattern table, best level first.
func Tiers() []Tier {
	return tiers
}
