package models

import "strings"

// MaxLevel is the final level; its enemy is the boss.
const MaxLevel = 15

// Category names a family of problem templates.
type Category string

const (
	CategoryAlgebra     Category = "algebra"
	CategoryGeometry    Category = "geometry"
	CategoryLogic       Category = "logic"
	CategoryCalculus    Category = "calculus"
	CategoryProbability Category = "probability"
)

// Categories lists every category in unlock order.
var Categories = []Category{
	CategoryAlgebra,
	CategoryGeometry,
	CategoryLogic,
	CategoryCalculus,
	CategoryProbability,
}

// Problem is a single generated question and its expected answer.
type Problem struct {
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Category Category `yaml:"category"`
}

// Check reports whether answer matches the expected answer, ignoring case
// and surrounding whitespace.
func (p Problem) Check(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(p.Answer))
}

// Enemy describes the opponent fought at one level.
type Enemy struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // e.g., "#8FBC8F"
}

// Roster is the fixed, ordered list of enemies. Index 0 is level 1.
type Roster struct {
	Title   string  `yaml:"title"`
	Enemies []Enemy `yaml:"enemies"`
}

// Enemy returns the enemy for a 1-based level. Levels outside the roster
// are clamped to the nearest end.
func (r *Roster) Enemy(level int) Enemy {
	if len(r.Enemies) == 0 {
		return Enemy{}
	}
	if level < 1 {
		level = 1
	}
	if level > len(r.Enemies) {
		level = len(r.Enemies)
	}
	return r.Enemies[level-1]
}

// IsBossLevel reports whether level is the final boss level.
func IsBossLevel(level int) bool {
	return level == MaxLevel
}
