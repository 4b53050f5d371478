// Package problems generates the questions a player answers to attack.
package problems

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/tatianab/math-battles/internal/models"
)

const (
	// MaxAttempts is the number of colliding draws tolerated before the
	// seen set is cleared.
	MaxAttempts = 10

	baseCategories = 3
	maxComplexity  = 5
)

// Seen holds the questions already issued for the current level.
type Seen map[string]struct{}

func (s Seen) Has(q string) bool {
	_, ok := s[q]
	return ok
}

func (s Seen) Add(q string) { s[q] = struct{}{} }

// Clear empties the set in place.
func (s Seen) Clear() {
	for q := range s {
		delete(s, q)
	}
}

// Generator produces problems from a seedable random source. It is not
// safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// CategoriesForLevel returns the categories unlocked at level: three at
// levels 1-2, then one more every three levels, up to all five.
func CategoriesForLevel(level int) []models.Category {
	n := baseCategories + level/3
	if n > len(models.Categories) {
		n = len(models.Categories)
	}
	if n < baseCategories {
		n = baseCategories
	}
	return models.Categories[:n]
}

// Complexity is the operand scale factor for level.
func Complexity(level int) int {
	if level < 1 {
		return 1
	}
	return min(level, maxComplexity)
}

// Generate returns a problem for level whose question is not in seen, and
// records it there. After MaxAttempts collisions seen is cleared and the
// next draw is accepted as is.
func (g *Generator) Generate(level int, seen Seen) models.Problem {
	cats := CategoriesForLevel(level)
	return g.generateFrom(cats[g.rng.Intn(len(cats))], level, seen)
}

func (g *Generator) generateFrom(cat models.Category, level int, seen Seen) models.Problem {
	for attempt := 1; ; attempt++ {
		p := g.draw(cat, level)
		if !seen.Has(p.Question) {
			seen.Add(p.Question)
			return p
		}
		if attempt >= MaxAttempts {
			seen.Clear()
			p = g.draw(cat, level)
			seen.Add(p.Question)
			return p
		}
	}
}

func (g *Generator) draw(cat models.Category, level int) models.Problem {
	c := Complexity(level)
	var p models.Problem
	switch cat {
	case models.CategoryAlgebra:
		p = g.algebra(c)
	case models.CategoryGeometry:
		p = g.geometry(c)
	case models.CategoryLogic:
		p = g.logic()
	case models.CategoryCalculus:
		p = g.calculus(c)
	default:
		p = g.probability(c)
	}
	p.Category = cat
	return p
}

// operand returns a uniform integer in [1, n].
func (g *Generator) operand(n int) int {
	return g.rng.Intn(n) + 1
}

func (g *Generator) pick(templates []models.Problem) models.Problem {
	return templates[g.rng.Intn(len(templates))]
}

func (g *Generator) algebra(c int) models.Problem {
	a := g.operand(10 * c)
	b := g.operand(10 * c)
	k := g.operand(5 * c)

	return g.pick([]models.Problem{
		{
			Question: fmt.Sprintf("Solve for x: %dx + %d = %d", a, b, k),
			// Left unrounded: 1/3 stays 0.3333333333333333.
			Answer: strconv.FormatFloat(float64(k-b)/float64(a), 'f', -1, 64),
		},
		{
			Question: fmt.Sprintf("What is %d² + %d²?", a, b),
			Answer:   strconv.Itoa(a*a + b*b),
		},
	})
}

func (g *Generator) geometry(c int) models.Problem {
	a := g.operand(10 * c)
	b := g.operand(10 * c)

	return g.pick([]models.Problem{
		{
			Question: fmt.Sprintf("Find the area of a rectangle with length %d and width %d", a, b),
			Answer:   strconv.Itoa(a * b),
		},
		{
			Question: fmt.Sprintf("Find the hypotenuse of a right triangle with sides %d and %d", a, b),
			Answer:   fixed2(math.Hypot(float64(a), float64(b))),
		},
	})
}

func (g *Generator) logic() models.Problem {
	return g.pick([]models.Problem{
		{
			Question: "If all A are B, and all B are C, then all A are C. True or False?",
			Answer:   "true",
		},
		{
			Question: "What comes next: 2, 4, 8, 16, ...?",
			Answer:   "32",
		},
	})
}

func (g *Generator) calculus(c int) models.Problem {
	a := g.operand(2 * c)
	b := g.operand(5 * c)
	x := g.operand(c + 1)

	return g.pick([]models.Problem{
		{
			Question: fmt.Sprintf("What is the derivative of f(x) = %dx² + %dx at x = %d?", a, b, x),
			Answer:   strconv.Itoa(2*a*x + b),
		},
		{
			Question: fmt.Sprintf("Evaluate the integral of %dx dx from 0 to %d", 2*a, x),
			Answer:   strconv.Itoa(a * x * x),
		},
	})
}

func (g *Generator) probability(c int) models.Problem {
	sum := g.rng.Intn(11) + 2
	red := g.operand(5 * c)
	blue := g.operand(5 * c)

	return g.pick([]models.Problem{
		{
			Question: fmt.Sprintf("What is the probability of rolling a sum of %d with two dice? (2 decimals)", sum),
			Answer:   DiceProbability(sum),
		},
		{
			Question: fmt.Sprintf("A bag holds %d red and %d blue marbles. What is the probability of drawing a red marble? (2 decimals)", red, blue),
			Answer:   fixed2(float64(red) / float64(red+blue)),
		},
	})
}

// diceWays[s] is the number of ways two six-sided dice sum to s.
var diceWays = [13]int{0, 0, 1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1}

// DiceProbability returns the chance of two dice summing to sum, to two
// decimal places. Impossible sums return "0".
func DiceProbability(sum int) string {
	if sum < 2 || sum > 12 {
		return "0"
	}
	return fixed2(float64(diceWays[sum]) / 36)
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
