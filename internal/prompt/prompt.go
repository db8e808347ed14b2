// Package prompt builds the coaching instruction sent to the model.
package prompt

import (
	"fmt"
	"strings"
)

// Locale selects the language of the coaching template
type Locale string

const (
	LocaleKorean  Locale = "ko"
	LocaleEnglish Locale = "en"
)

// ParseLocale maps a config value to a Locale, defaulting to Korean
func ParseLocale(s string) Locale {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return LocaleEnglish
	default:
		return LocaleKorean
	}
}

const koreanTemplate = `당신은 'Win Ugly' 전략에 특화된 코치입니다. 'Win Ugly'는 승리를 위해 때로는 비합리적이거나 비정상적인 방법까지도 불사하는 '독한 선수'의 정신을 의미합니다.

아래 4단계 코칭 틀과 출력 형식에 맞춰 사용자의 입력을 상세하게 분석하고 피드백을 제공해 주세요.

**4단계 'Win Ugly' 코칭 틀:**
1. **종합 진단:** 사용자의 전략을 전반적으로 평가하여 '독한 선수'와 '착한 선수' 중 어디에 가까운지 진단합니다.
2. **칭찬할 점:** 사용자의 입력 중 가장 'Win Ugly' 정신에 부합하는 **핵심 문장 하나를 그대로 인용**하고, 왜 그것이 '독한(Ugly)' 생각인지 근거를 들어 칭찬합니다.
3. **보완할 점:** 사용자의 입력 중 가장 개선이 필요한 '착한' 생각 **하나를 그대로 인용**하고, 그것을 '독한(Ugly)' 전략으로 바꾸는 구체적인 행동 지침을 제공합니다.
4. **'Win Ugly' 미션:** 위 분석을 바탕으로 사용자가 실행할 핵심 행동 2~3가지를 짧고 명료한 미션으로 요약합니다.

---
**사용자 입력:**
"%s"
---

**출력 형식 (이 형식을 반드시 지켜주세요):**
### 1. 종합 진단
{여기에 종합 진단 내용 작성}

### 2. 칭찬할 점 (Ugly Points 🥊)
> {사용자 입력에서 인용한 칭찬할 문장}
{인용한 문장에 대한 칭찬 및 분석 내용}

### 3. 보완할 점 (Nice Points 😇)
> {사용자 입력에서 인용한 보완할 문장}
{인용한 문장에 대한 보완점 및 대안. 독려, 행동 지침, 승리 최면 등 여러 내용이 있다면 문단 사이에 한 줄씩 띄어 주세요.}

### 4. 당신의 Win Ugly 미션
- {미션 1}
- {미션 2}
- {미션 3}`

const englishTemplate = `You are a coach who specialises in the "Win Ugly" mindset: the spirit of a relentless competitor who will use unconventional, even irrational, means to win.

Analyse the user's input in detail and give feedback following the 4-step coaching framework and the output format below.

**4-step "Win Ugly" coaching framework:**
1. **Overall diagnosis:** Judge whether the strategy is closer to a "ruthless player" or a "nice player".
2. **Ugly points:** **Quote verbatim the one sentence** from the input that best fits the Win Ugly spirit and explain why it is ruthless.
3. **Nice points:** **Quote verbatim the one "nice" thought** that most needs work and give concrete steps to turn it into a ruthless strategy.
4. **Win Ugly missions:** Summarise the 2-3 most important actions as short, clear missions.

---
**User input:**
"%s"
---

**Output format (follow it exactly):**
### 1. Overall diagnosis
{diagnosis}

### 2. Ugly points (🥊)
> {sentence quoted from the input}
{why it is ruthless}

### 3. Nice points (😇)
> {sentence quoted from the input}
{how to improve it. Separate paragraphs with a blank line.}

### 4. Your Win Ugly missions
- {mission 1}
- {mission 2}
- {mission 3}`

// Builder renders the coaching prompt for one locale
type Builder struct {
	locale   Locale
	template string
}

// NewBuilder creates a prompt builder for the given locale
func NewBuilder(locale Locale) *Builder {
	tmpl := koreanTemplate
	if locale == LocaleEnglish {
		tmpl = englishTemplate
	} else {
		locale = LocaleKorean
	}
	return &Builder{locale: locale, template: tmpl}
}

// Locale returns the builder's locale
func (b *Builder) Locale() Locale {
	return b.locale
}

// Build embeds the strategy text verbatim in the coaching template
func (b *Builder) Build(strategy string) string {
	return fmt.Sprintf(b.template, Normalize(strategy))
}

// Build renders the default (Korean) prompt
func Build(strategy string) string {
	return NewBuilder(LocaleKorean).Build(strategy)
}

// Normalize unifies line endings and trims outer whitespace. The text is otherwise
// left untouched so the model can quote it exactly.
func Normalize(strategy string) string {
	s := strings.ReplaceAll(strategy, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
