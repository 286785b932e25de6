package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Названия шести базовых характеристик D&D 5e в каноническом порядке.
var abilityOrder = []string{
	"strength",
	"dexterity",
	"constitution",
	"intelligence",
	"wisdom",
	"charisma",
}

// CharacterSheet представляет неизменяемый снимок персонажа игрока,
// передаваемый AI-провайдеру вместе с каждым запросом.
type CharacterSheet struct {
	Name       string         `json:"name"`
	Race       string         `json:"race"`
	Class      string         `json:"class"`
	Background string         `json:"background"`
	Stats      map[string]int `json:"stats,omitempty"`
}

// AbilityModifier вычисляет модификатор характеристики по правилам D&D 5e:
// floor((score - 10) / 2). Деление в Go округляет к нулю, поэтому для
// отрицательных значений используем явное округление вниз.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Stat возвращает значение характеристики или 10, если она не задана.
func (c CharacterSheet) Stat(name string) int {
	if v, ok := c.Stats[name]; ok {
		return v
	}
	return 10
}

// Context строит текстовый контекст персонажа для системного сообщения
// провайдера: кто персонаж и его характеристики с модификаторами.
func (c CharacterSheet) Context() string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"You are interacting with %s, a %s %s with a %s background.\n\nCharacter Stats:\n",
		c.Name, c.Race, c.Class, c.Background,
	)

	for _, stat := range abilityOrder {
		score := c.Stat(stat)
		fmt.Fprintf(&b, "- %s: %d (modifier: %d)\n", titleCase(stat), score, AbilityModifier(score))
	}

	// Характеристики вне стандартной шестерки тоже попадают в контекст
	for _, stat := range extraStats(c.Stats) {
		fmt.Fprintf(&b, "- %s: %d (modifier: %d)\n", titleCase(stat), c.Stats[stat], AbilityModifier(c.Stats[stat]))
	}

	b.WriteString("\nConsider these stats when suggesting ability checks, saving throws, and determining the success of actions. " +
		"Address the character by name and consider their racial traits, class abilities, and background story elements in your responses.")

	return b.String()
}

// extraStats возвращает отсортированный список нестандартных характеристик.
func extraStats(stats map[string]int) []string {
	known := make(map[string]bool, len(abilityOrder))
	for _, s := range abilityOrder {
		known[s] = true
	}

	var extra []string
	for s := range stats {
		if !known[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return extra
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
