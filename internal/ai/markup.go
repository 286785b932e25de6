package ai

import "regexp"

// markupReinforcement добавляется к системному промпту OpenRouter:
// модели за роутером часто игнорируют требования к разметке из основного
// промпта, поэтому повторяем их отдельным блоком в конце.
const markupReinforcement = `CRITICAL FORMATTING REMINDER - you MUST use this markup in every response:
- Wrap every location name in hash marks: #The Prancing Pony Tavern#
- Wrap every NPC name in at-signs: @Old Barliman@
- Put all NPC dialogue in double quotes: "Welcome, traveler!"
- Wrap dice notation in backticked brackets: ` + "`[1d20+3]`" + `
- Bold all ability checks and DCs: **Dexterity (Stealth) check**, **DC 15**`

// Регулярные выражения пост-обработки. RE2 не поддерживает lookbehind,
// поэтому каждая из них захватывает предшествующий символ первой группой
// и проверяет через его класс, что фрагмент еще не размечен.
var (
	// Локации: цепочка слов с заглавной буквы, оканчивающаяся на типичное
	// название места. Символ # или @ перед цепочкой означает готовую разметку.
	locationRe = regexp.MustCompile(`(^|[^#@\w])((?:[A-Z][a-z]+['’]?s? )+(?:Tavern|Inn|Keep|Castle|Temple|Shrine|Forest|Woods|Village|Town|City|Dungeon|Cave|Caverns|Mountains?|Market|Square|Gate|Tower|Bridge|Harbor|Docks|Ruins|Crypt|Mine|Swamp|Road))\b`)

	// NPC: титул или профессия плюс имя с заглавной буквы.
	npcRe = regexp.MustCompile(`(^|[^@#\w])((?:Old|Elder|Young|Captain|Commander|King|Queen|Prince|Princess|Lord|Lady|Sir|Dame|Master|Mistress|Barkeep|Innkeeper|Guard|Guardsman|Merchant|Wizard|Sorcerer|Priest|Priestess|Father|Mother|Brother|Sister) [A-Z][a-z]+)\b`)

	// Реплика NPC после глагола речи, еще не взятая в кавычки.
	dialogueRe = regexp.MustCompile(`(@[^@\n]+@ (?:says|asks|replies|answers|shouts|whispers|exclaims|mutters|growls|calls out)[,:]? )([^"\n][^.!?\n]*[.!?])`)

	// Проверки характеристик и спасброски.
	checkRe = regexp.MustCompile(`(^|[^*])((?:Strength|Dexterity|Constitution|Intelligence|Wisdom|Charisma)(?: \([A-Za-z ]+\))? (?:check|saving throw))`)

	// Класс сложности.
	dcRe = regexp.MustCompile(`(^|[^*\d])(DC \d+)\b`)

	// Голая нотация костей вне скобок и бэктиков.
	bareDiceRe = regexp.MustCompile("(^|[^\\w`\\[])(\\d*d\\d+(?:[+-]\\d+)?)\\b")
)

// EnhanceMarkup дополняет разметку в ответе модели по принципу best effort:
// оборачивает узнаваемые локации, NPC, реплики, проверки и кости в ожидаемый
// клиентом формат. Каждое правило пропускает уже размеченные фрагменты,
// поэтому повторный вызов не меняет результат.
func EnhanceMarkup(text string) string {
	text = locationRe.ReplaceAllString(text, "$1#$2#")
	text = npcRe.ReplaceAllString(text, "$1@$2@")
	text = dialogueRe.ReplaceAllString(text, `$1"$2"`)
	text = checkRe.ReplaceAllString(text, "$1**$2**")
	text = dcRe.ReplaceAllString(text, "$1**$2**")
	text = bareDiceRe.ReplaceAllString(text, "$1`[$2]`")
	return text
}
