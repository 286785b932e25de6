package game

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxDiceCount = 100
	maxDieSides  = 1000
)

// diceNotationRe разбирает нотацию вида "2d6+3": число костей (опционально),
// число граней и модификатор (опционально).
var diceNotationRe = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// wrappedDiceRe находит нотацию костей в квадратных скобках вместе с
// возможными бэктиками вокруг. Бэктики захватываются, чтобы не оборачивать
// уже размеченные броски повторно.
var wrappedDiceRe = regexp.MustCompile("`?\\[(\\d*d\\d+(?:[+-]\\d+)?)\\]`?")

// WrapDiceRolls приводит все вхождения вида [2d6+3] к формату `[2d6+3]`,
// ожидаемому клиентом. Уже обернутые броски не трогает, поэтому функция
// идемпотентна и ее можно применять к тексту любое число раз.
func WrapDiceRolls(text string) string {
	return wrappedDiceRe.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "`") && strings.HasSuffix(match, "`") {
			return match
		}
		inner := strings.Trim(match, "`")
		return "`" + inner + "`"
	})
}

// RollResult — итог одного броска: исходная нотация, выпавшие значения,
// модификатор и сумма.
type RollResult struct {
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
}

// Notation — разобранная нотация костей.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// ParseNotation разбирает строку вида "d20", "2d6" или "4d8-1".
// Число костей по умолчанию 1. Нотации с нулем граней, нулем костей
// или за пределами разумных лимитов отклоняются.
func ParseNotation(s string) (Notation, error) {
	m := diceNotationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Notation{}, fmt.Errorf("invalid dice notation %q", s)
	}

	count := 1
	if m[1] != "" {
		var err error
		count, err = strconv.Atoi(m[1])
		if err != nil {
			return Notation{}, fmt.Errorf("invalid dice notation %q", s)
		}
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Notation{}, fmt.Errorf("invalid dice notation %q", s)
	}

	modifier := 0
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[3])
		if err != nil {
			return Notation{}, fmt.Errorf("invalid dice notation %q", s)
		}
	}

	if count < 1 || count > maxDiceCount {
		return Notation{}, fmt.Errorf("dice count out of range in %q", s)
	}
	if sides < 2 || sides > maxDieSides {
		return Notation{}, fmt.Errorf("die sides out of range in %q", s)
	}

	return Notation{Count: count, Sides: sides, Modifier: modifier}, nil
}

// Roll разбирает нотацию и бросает кости.
func Roll(notation string) (RollResult, error) {
	n, err := ParseNotation(notation)
	if err != nil {
		return RollResult{}, err
	}

	rolls := make([]int, n.Count)
	total := n.Modifier
	for i := range rolls {
		rolls[i] = rand.IntN(n.Sides) + 1
		total += rolls[i]
	}

	return RollResult{
		Notation: strings.TrimSpace(notation),
		Rolls:    rolls,
		Modifier: n.Modifier,
		Total:    total,
	}, nil
}
