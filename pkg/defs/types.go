// Package defs loads the embedded building, research, and rare
// resource definition tables and validates them before play.
package defs

// RawBuilding is a building entry as stored in buildings.yaml.
// Income amounts are strings so data can use either a plain integer
// or the "random:min:max" range form; they are parsed once here.
type RawBuilding struct {
	ID                 string            `yaml:"id"`
	Name               string            `yaml:"name"`
	Width              int               `yaml:"width"`
	Height             int               `yaml:"height"`
	Population         int               `yaml:"population"`
	Cost               map[string]int    `yaml:"cost"`
	PassiveIncome      map[string]string `yaml:"passive_income"`
	RequiredTechnology string            `yaml:"required_technology"`
}

// RawResearch is a research entry as stored in research.yaml.
type RawResearch struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Tree               string   `yaml:"tree"`
	Turns              float64  `yaml:"turns"`
	RequiredResearches []string `yaml:"required_researches"`
}

// RawRareResource is a deposit entry as stored in rare_resources.yaml.
type RawRareResource struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	BonusBuilding string `yaml:"bonus_building"`
	Resource      string `yaml:"resource"`
	Amount        string `yaml:"amount"`
}

// RawFile is the top-level shape of a definition YAML file. A file
// may carry any mix of the three tables.
type RawFile struct {
	Buildings     []RawBuilding     `yaml:"buildings"`
	Research      []RawResearch     `yaml:"research"`
	RareResources []RawRareResource `yaml:"rare_resources"`
}
