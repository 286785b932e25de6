package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dnd-server/internal/ai"
)

func TestEnhanceMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "wraps location",
			in:   "You arrive at The Misty Tavern after dark.",
			want: "You arrive at #The Misty Tavern# after dark.",
		},
		{
			name: "keeps tagged location",
			in:   "You arrive at #The Misty Tavern# after dark.",
			want: "You arrive at #The Misty Tavern# after dark.",
		},
		{
			name: "wraps titled npc",
			in:   "Captain Helena blocks the gate.",
			want: "@Captain Helena@ blocks the gate.",
		},
		{
			name: "keeps tagged npc",
			in:   "@Captain Helena@ blocks the gate.",
			want: "@Captain Helena@ blocks the gate.",
		},
		{
			name: "quotes dialogue after npc tag",
			in:   "@Captain Helena@ says Stand back, traveler!",
			want: "@Captain Helena@ says \"Stand back, traveler!\"",
		},
		{
			name: "bolds ability check",
			in:   "Make a Dexterity (Stealth) check to sneak past.",
			want: "Make a **Dexterity (Stealth) check** to sneak past.",
		},
		{
			name: "bolds dc",
			in:   "You must beat DC 15 to succeed.",
			want: "You must beat **DC 15** to succeed.",
		},
		{
			name: "wraps bare dice",
			in:   "Roll d20+5 for initiative, then 2d6 damage.",
			want: "Roll `[d20+5]` for initiative, then `[2d6]` damage.",
		},
		{
			name: "keeps wrapped dice",
			in:   "Roll `[d20+5]` for initiative.",
			want: "Roll `[d20+5]` for initiative.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ai.EnhanceMarkup(tc.in))
		})
	}
}

func TestEnhanceMarkupIdempotent(t *testing.T) {
	in := "@Captain Helena@ waits at The Misty Tavern. Make a Wisdom (Perception) check against DC 12, then roll 1d4+1."

	once := ai.EnhanceMarkup(in)
	twice := ai.EnhanceMarkup(once)

	assert.Equal(t, once, twice)
}

func TestEnhanceMarkupCombined(t *testing.T) {
	in := "At The Sunken Temple, Elder Miriel asks Will you help us? Make a Charisma (Persuasion) check against DC 15, rolling d20+3."

	got := ai.EnhanceMarkup(in)

	assert.Contains(t, got, "#The Sunken Temple#")
	assert.Contains(t, got, "@Elder Miriel@")
	assert.Contains(t, got, "asks \"Will you help us?\"")
	assert.Contains(t, got, "**Charisma (Persuasion) check**")
	assert.Contains(t, got, "**DC 15**")
	assert.Contains(t, got, "`[d20+3]`")
}
