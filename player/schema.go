package player

import "riskga/genome"

// Gene names of the genetic player.
const (
	GeneTurnInCutoff = "turn_in_cutoff"

	GeneAttackBonus     = "att_bonus_wgt"
	GeneAttackChance    = "att_chance_wgt"
	GeneAttackConquer   = "att_conqc_wgt"
	GeneAttackArmies    = "att_narmies_wgt"
	GeneAttackMission   = "att_mission_wgt"
	GeneAttackCutoff    = "att_cutoff"
	GeneAttackCutoffWin = "att_cutoff_win"

	GeneMissionBase      = "mis_base_wgt"
	GeneMissionContinent = "mis_cont_wgt"
	GeneMissionExtra     = "mis_extr_wgt"
	GeneMissionTerritory = "mis_terr_wgt"
	GeneMissionPlayer    = "mis_play_wgt"

	GeneReinforceBonus            = "re_dbonus_wgt"
	GeneReinforceContinent        = "re_ibonus_wgt"
	GeneReinforceMission          = "re_mission_wgt"
	GeneReinforceArmyVantage      = "re_avantage_wgt"
	GeneReinforceTerritoryVantage = "re_tvantage_wgt"

	GeneFortifyMin              = "ft_min_wgt"
	GeneFortifyArmyVantage      = "ft_avantage_wgt"
	GeneFortifyTerritoryVantage = "ft_tvantage_wgt"
	GeneFortifyMission          = "ft_mission_wgt"
	GeneFortifyBonus            = "ft_bonus_wgt"
	GeneFortifyArmies           = "ft_narmies_wgt"
)

const weightBound = 25.0

func weightGene(name string, volatility, granularity float64, precision int) genome.Gene {
	return genome.FloatGene(name, -weightBound, weightBound, volatility, granularity, precision)
}

var signs = []float64{-1, 0, 1}

var geneticSchema = genome.MustSchema(
	genome.ListGene(GeneTurnInCutoff, []float64{4, 6, 8, 10}, 0.01),

	weightGene(GeneAttackBonus, 0.03, 0.10, 2),
	weightGene(GeneAttackChance, 0.03, 0.10, 2),
	weightGene(GeneAttackConquer, 0.03, 0.10, 2),
	weightGene(GeneAttackArmies, 0.03, 0.10, 2),
	genome.ListGene(GeneAttackMission, signs, 0.03),
	weightGene(GeneAttackCutoff, 0.03, 0.25, 1),
	weightGene(GeneAttackCutoffWin, 0.015, 0.25, 1),

	weightGene(GeneMissionBase, 0.01, 0.25, 2),
	weightGene(GeneMissionContinent, 0.01, 0.25, 2),
	weightGene(GeneMissionExtra, 0.01, 0.25, 2),
	weightGene(GeneMissionTerritory, 0.01, 0.25, 2),
	genome.ListGene(GeneMissionPlayer, []float64{0, 1}, 0.01),

	weightGene(GeneReinforceBonus, 0.02, 0.10, 2),
	weightGene(GeneReinforceContinent, 0.02, 0.10, 2),
	genome.ListGene(GeneReinforceMission, signs, 0.01),
	weightGene(GeneReinforceArmyVantage, 0.02, 0.10, 2),
	weightGene(GeneReinforceTerritoryVantage, 0.02, 0.10, 2),

	weightGene(GeneFortifyMin, 0.01, 0.10, 2),
	weightGene(GeneFortifyArmyVantage, 0.01, 0.10, 2),
	weightGene(GeneFortifyTerritoryVantage, 0.01, 0.10, 2),
	weightGene(GeneFortifyMission, 0.01, 0.10, 2),
	weightGene(GeneFortifyBonus, 0.01, 0.10, 2),
	genome.ListGene(GeneFortifyArmies, signs, 0.005),
)

// GeneticSchema returns the genes evolved for the genetic player.
func GeneticSchema() *genome.Schema {
	return geneticSchema
}
