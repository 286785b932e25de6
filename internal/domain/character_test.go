package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dnd-server/internal/domain"
)

func TestAbilityModifier(t *testing.T) {
	cases := map[int]int{
		1:  -5,
		3:  -4,
		8:  -1,
		9:  -1,
		10: 0,
		11: 0,
		12: 1,
		14: 2,
		16: 3,
		18: 4,
		20: 5,
	}

	for score, want := range cases {
		assert.Equal(t, want, domain.AbilityModifier(score), "score %d", score)
	}
}

func TestCharacterStatDefault(t *testing.T) {
	c := domain.CharacterSheet{Stats: map[string]int{"strength": 14}}

	assert.Equal(t, 14, c.Stat("strength"))
	// Незаданная характеристика считается средней
	assert.Equal(t, 10, c.Stat("wisdom"))
}

func TestCharacterContext(t *testing.T) {
	c := domain.CharacterSheet{
		Name:       "Thorn",
		Race:       "Half-Orc",
		Class:      "Barbarian",
		Background: "Outlander",
		Stats: map[string]int{
			"strength":  18,
			"dexterity": 12,
			"luck":      16,
		},
	}

	ctx := c.Context()

	assert.Contains(t, ctx, "You are interacting with Thorn, a Half-Orc Barbarian with a Outlander background.")
	assert.Contains(t, ctx, "- Strength: 18 (modifier: 4)")
	assert.Contains(t, ctx, "- Dexterity: 12 (modifier: 1)")
	// Незаданные характеристики выводятся со значением по умолчанию
	assert.Contains(t, ctx, "- Wisdom: 10 (modifier: 0)")
	// Нестандартные характеристики тоже попадают в контекст
	assert.Contains(t, ctx, "- Luck: 16 (modifier: 3)")
	assert.Contains(t, ctx, "Address the character by name")
}
