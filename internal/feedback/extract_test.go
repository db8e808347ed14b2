package feedback

import (
	"strings"
	"testing"
	"winugly/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedReply = `네, 분석해 드리겠습니다.

### 1. 종합 진단
당신은 아직 '착한 선수'에 가깝습니다.
승부욕은 보이지만 실행 방법이 부드럽습니다.

### 2. 칭찬할 점 (Ugly Points 🥊)
> "절대 실수하지 않도록 최선을 다하겠습니다."
실수를 용납하지 않는 태도는 독한 선수의 기본입니다.

집착은 무기입니다.

### 3. 보완할 점 (Nice Points 😇)
> 동료들을 격려하며
격려는 좋지만 승리를 위한 격려여야 합니다.

경기 중에는 상대의 리듬을 깨는 데 집중하세요.

### 4. 당신의 Win Ugly 미션
- 매 경기 상대의 약점 3가지를 적어라
- 실수한 뒤 3초 안에 다음 플레이를 준비하라
- 관중이 아니라 스코어보드를 보라
`

func statusOf(r *model.Report, sec model.Section) model.OutcomeStatus {
	for _, o := range r.Outcomes {
		if o.Section() == sec {
			return o.Status
		}
	}
	return ""
}

func TestExtractWellFormed(t *testing.T) {
	r, err := Extract(wellFormedReply)
	require.NoError(t, err)

	assert.Equal(t, "종합 진단", r.DiagnosisTitle)
	assert.Equal(t, "당신은 아직 '착한 선수'에 가깝습니다.\n승부욕은 보이지만 실행 방법이 부드럽습니다.", r.Diagnosis)

	assert.Equal(t, "칭찬할 점 (Ugly Points 🥊)", r.Praise.Title)
	assert.Equal(t, "절대 실수하지 않도록 최선을 다하겠습니다.", r.Praise.Quote)
	assert.Equal(t, []string{"실수를 용납하지 않는 태도는 독한 선수의 기본입니다.", "집착은 무기입니다."}, r.Praise.Feedback)

	assert.Equal(t, "동료들을 격려하며", r.Improve.Quote)
	assert.Equal(t, []string{"격려는 좋지만 승리를 위한 격려여야 합니다.", "경기 중에는 상대의 리듬을 깨는 데 집중하세요."}, r.Improve.Feedback)

	assert.Equal(t, []string{
		"매 경기 상대의 약점 3가지를 적어라",
		"실수한 뒤 3초 안에 다음 플레이를 준비하라",
		"관중이 아니라 스코어보드를 보라",
	}, r.Missions)

	assert.False(t, r.Partial())
	assert.Len(t, r.Outcomes, 4)
}

func TestExtractIsDeterministic(t *testing.T) {
	first, err := Extract(wellFormedReply)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Extract(wellFormedReply)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExtractQuoteIsolation(t *testing.T) {
	reply := "### 1. Diagnosis\nSolid.\n### 2. Ugly points\n> I will dominate.\nThis is bold."
	r, err := Extract(reply)
	require.NoError(t, err)

	assert.Equal(t, "I will dominate.", r.Praise.Quote)
	assert.Equal(t, []string{"This is bold."}, r.Praise.Feedback)
	for _, p := range r.Praise.Feedback {
		assert.NotContains(t, p, "I will dominate.")
	}
}

func TestExtractMissionOrder(t *testing.T) {
	reply := "### 1. D\nx\n### 2. P\n> q\nf\n### 3. I\n> q\nf\n### 4. Missions\n- Train harder\n- Sleep more\n- Trash talk less"
	r, err := Extract(reply)
	require.NoError(t, err)
	assert.Equal(t, []string{"Train harder", "Sleep more", "Trash talk less"}, r.Missions)
}

func TestExtractMissingMissions(t *testing.T) {
	reply := "### 1. D\nx\n### 2. P\n> q\nf\n### 3. I\n> q\nf"
	r, err := Extract(reply)
	require.NoError(t, err)
	assert.Empty(t, r.Missions)
	assert.Equal(t, model.OutcomeMissing, statusOf(r, model.SectionMissions))
	assert.True(t, r.Partial())
}

func TestExtractMissingQuoteLeavesSectionEmpty(t *testing.T) {
	reply := "### 1. D\nx\n### 2. P\n> q\nf\n### 3. I\nNo quote here.\nStill advice.\n### 4. M\n- go"
	r, err := Extract(reply)
	require.NoError(t, err)

	assert.Empty(t, r.Improve.Quote)
	assert.Empty(t, r.Improve.Feedback)
	assert.True(t, r.Improve.IsEmpty())
	assert.Equal(t, []string{"No quote here.", "Still advice."}, r.Improve.Unquoted)
	assert.Equal(t, model.OutcomeNoQuote, statusOf(r, model.SectionImprove))

	assert.Equal(t, "q", r.Praise.Quote)
	assert.Equal(t, []string{"f"}, r.Praise.Feedback)
	assert.Equal(t, []string{"go"}, r.Missions)
}

func TestExtractEmptyQuoteSection(t *testing.T) {
	r, err := Extract("### 1. D\nx\n### 3. I\n\n   \n")
	require.NoError(t, err)
	assert.True(t, r.Improve.IsEmpty())
	assert.Equal(t, model.OutcomeEmpty, statusOf(r, model.SectionImprove))
	assert.Equal(t, model.OutcomeMissing, statusOf(r, model.SectionPraise))
}

func TestExtractTwoHeadings(t *testing.T) {
	reply := "### 1. Diagnosis\nToo nice.\n### 2. Ugly points\n> I never give up.\nGood."
	r, err := Extract(reply)
	require.NoError(t, err)

	assert.Equal(t, "Too nice.", r.Diagnosis)
	assert.Equal(t, "I never give up.", r.Praise.Quote)
	assert.True(t, r.Improve.IsEmpty())
	assert.Empty(t, r.Missions)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract("")
	assert.ErrorIs(t, err, ErrEmptyReply)

	_, err = Extract(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyReply)

	_, err = Extract("Sorry, I can't help with that.")
	assert.ErrorIs(t, err, ErrNoSections)

	_, err = Extract("## 1. Only two hashes\n# 2. one")
	assert.ErrorIs(t, err, ErrNoSections)
}

func TestExtractPreambleDiscarded(t *testing.T) {
	r, err := Extract("Intro text\n> not a quote\n- not a mission\n### 1. D\nbody")
	require.NoError(t, err)
	assert.Equal(t, "body", r.Diagnosis)
	assert.Empty(t, r.Praise.Quote)
	assert.Empty(t, r.Missions)
}

func TestExtractHeadingVariants(t *testing.T) {
	reply := "  ###1.Diagnosis\nA\n### **2. Praise**\n> q\nf\r\n###   3.   Improve\n> q2\n### 4.\n- m"
	r, err := Extract(reply)
	require.NoError(t, err)

	assert.Equal(t, "Diagnosis", r.DiagnosisTitle)
	assert.Equal(t, "A", r.Diagnosis)
	assert.Equal(t, "Praise", r.Praise.Title)
	assert.Equal(t, []string{"f"}, r.Praise.Feedback)
	assert.Equal(t, "Improve", r.Improve.Title)
	assert.Equal(t, "q2", r.Improve.Quote)
	assert.Empty(t, r.Improve.Feedback)
	assert.Equal(t, model.OutcomeFound, statusOf(r, model.SectionImprove))
	assert.Equal(t, []string{"m"}, r.Missions)
}

func TestExtractUsesHeadingNumbers(t *testing.T) {
	// Out of order, repeated and unknown numbers
	reply := "### 4. M\n- last\n### 1. D\nfirst\n### 1. D again\nignored\n### 7. Bonus\n- not a mission\n### 2. P\n> q\nf"
	r, err := Extract(reply)
	require.NoError(t, err)

	assert.Equal(t, "first", r.Diagnosis)
	assert.Equal(t, []string{"last"}, r.Missions)
	assert.Equal(t, "q", r.Praise.Quote)
	assert.Equal(t, model.OutcomeMissing, statusOf(r, model.SectionImprove))
}

func TestExtractThematicBreaksDropped(t *testing.T) {
	reply := "### 1. D\nbody\n\n---\n\n### 4. M\n- a\n- b\n\n***\n"
	r, err := Extract(reply)
	require.NoError(t, err)
	assert.Equal(t, "body", r.Diagnosis)
	assert.Equal(t, []string{"a", "b"}, r.Missions)
}

func TestExtractMissionWrapping(t *testing.T) {
	reply := "### 4. M\nLead-in sentence.\n- first part\n  continues here\n* second\n-\n• third\n"
	r, err := Extract(reply)
	require.NoError(t, err)
	assert.Equal(t, []string{"first part continues here", "second", "third"}, r.Missions)
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"plain"`:      "plain",
		"“curly”":      "curly",
		"'single'":     "single",
		"「corner」":     "corner",
		`"unbalanced`:  `"unbalanced`,
		`"a" and "b"`:  `a" and "b`,
		`no quotes`:    "no quotes",
		`"`:            `"`,
		`"  padded  "`: "padded",
	}
	for in, want := range cases {
		assert.Equal(t, want, unquote(in), in)
	}
}

func TestExtractLongReplyKeepsOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("### 4. M\n")
	for i := 0; i < 10; i++ {
		b.WriteString("- mission ")
		b.WriteByte(byte('0' + i))
		b.WriteString("\n")
	}
	r, err := Extract(b.String())
	require.NoError(t, err)
	require.Len(t, r.Missions, 10)
	for i, m := range r.Missions {
		assert.Equal(t, "mission "+string(rune('0'+i)), m)
	}
}
