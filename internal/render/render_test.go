package render

import (
	"bytes"
	"strings"
	"testing"
	"winugly/internal/feedback"
	"winugly/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `### 1. 종합 진단
당신은 **착한 선수**에 가깝습니다.

### 2. 칭찬할 점 (Ugly Points 🥊)
> 절대 물러서지 않겠다
좋은 집착입니다.

### 3. 보완할 점 (Nice Points 😇)
> 관중에게 좋은 모습을 보여주고 싶다
관중이 아니라 승리를 보세요.

### 4. 당신의 Win Ugly 미션
- 상대 분석 노트 쓰기
- 매일 10분 시각화 훈련
`

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(KoreanStyle())
	require.NoError(t, err)
	return r
}

func extract(t *testing.T, reply string) *model.Report {
	t.Helper()
	report, err := feedback.Extract(reply)
	require.NoError(t, err)
	return report
}

func TestCardRendersAllSections(t *testing.T) {
	r := newRenderer(t)
	out, err := r.CardString(extract(t, sampleReply))
	require.NoError(t, err)

	assert.Contains(t, out, `id="capture-area"`)
	assert.Contains(t, out, "Win Ugly")
	assert.Contains(t, out, "section-diagnosis")
	assert.Contains(t, out, "<strong>착한 선수</strong>")
	assert.Contains(t, out, `class="quote-box quote-box-good">"절대 물러서지 않겠다"`)
	assert.Contains(t, out, `class="quote-box quote-box-bad">"관중에게 좋은 모습을 보여주고 싶다"`)
	assert.Contains(t, out, "<li><span class=\"mission-glyph\">🎯</span><span>상대 분석 노트 쓰기</span></li>")
	assert.Less(t, strings.Index(out, "상대 분석 노트 쓰기"), strings.Index(out, "매일 10분 시각화 훈련"))
}

func TestCardIsDeterministic(t *testing.T) {
	r := newRenderer(t)
	first, err := r.CardString(extract(t, sampleReply))
	require.NoError(t, err)
	second, err := r.CardString(extract(t, sampleReply))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCardOmitsMissingSections(t *testing.T) {
	r := newRenderer(t)
	report := extract(t, "### 1. D\nonly diagnosis\n### 2. P\n> q\nf")
	out, err := r.CardString(report)
	require.NoError(t, err)

	assert.Contains(t, out, "section-praise")
	assert.NotContains(t, out, "section-improve")
	assert.NotContains(t, out, "section-missions")
	assert.NotContains(t, out, "mission-list")
	assert.NotContains(t, out, KoreanStyle().MissionsHeading)
}

func TestCardOmitsSectionWithoutQuote(t *testing.T) {
	r := newRenderer(t)
	report := extract(t, "### 1. D\nx\n### 3. I\nplain advice only")
	out, err := r.CardString(report)
	require.NoError(t, err)

	assert.Contains(t, out, "section-diagnosis")
	assert.NotContains(t, out, "section-improve")
	assert.NotContains(t, out, "plain advice only")
	assert.NotContains(t, out, "quote-box-bad")
	assert.NotContains(t, out, "<blockquote")

	md := Markdown(KoreanStyle(), report)
	assert.NotContains(t, md, "plain advice only")
}

func TestCardEscapesModelText(t *testing.T) {
	r := newRenderer(t)
	report := &model.Report{
		Diagnosis: `<script>alert("x")</script> **safe**`,
		Missions:  []string{"<b>bold?</b>"},
	}
	out, err := r.CardString(report)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<strong>safe</strong>")
	assert.Contains(t, out, "&lt;b&gt;bold?&lt;/b&gt;")
}

func TestCardNilReport(t *testing.T) {
	r := newRenderer(t)
	out, err := r.CardString(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "report-header")
	assert.NotContains(t, out, "report-section")
}

func TestDocumentExportControl(t *testing.T) {
	r := newRenderer(t)
	report := extract(t, sampleReply)

	var withExport bytes.Buffer
	require.NoError(t, r.Document(&withExport, report, DocumentOptions{Export: true}))
	out := withExport.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `id="save-btn"`)
	assert.Contains(t, out, "html2canvas.min.js")
	assert.Contains(t, out, `"win-ugly-report.png"`)
	assert.Contains(t, out, `id="export-notice"`)
	assert.Contains(t, out, "rgba(49, 157, 208, 0.60)")

	var without bytes.Buffer
	require.NoError(t, r.Document(&without, report, DocumentOptions{}))
	assert.NotContains(t, without.String(), "save-btn")
	assert.NotContains(t, without.String(), "html2canvas")
	assert.Contains(t, without.String(), "section-missions")
}

func TestPage(t *testing.T) {
	r := newRenderer(t)

	var empty bytes.Buffer
	require.NoError(t, r.Page(&empty, PageData{MaxInputChars: 2000}))
	out := empty.String()
	assert.Contains(t, out, `action="/analyze"`)
	assert.Contains(t, out, `maxlength="2000"`)
	assert.NotContains(t, out, "capture-area")
	assert.NotContains(t, out, `role="alert"`)

	var full bytes.Buffer
	require.NoError(t, r.Page(&full, PageData{
		Strategy:      `<i>"keep"</i>`,
		Flash:         &Flash{Kind: FlashWarning, Message: "분석할 전략을 입력해주세요."},
		Report:        extract(t, sampleReply),
		MaxInputChars: 2000,
		Export:        true,
	}))
	out = full.String()
	assert.Contains(t, out, "notice-warning")
	assert.Contains(t, out, "분석할 전략을 입력해주세요.")
	assert.Contains(t, out, "&lt;i&gt;")
	assert.Contains(t, out, "capture-area")
	assert.Contains(t, out, "save-btn")
	assert.Contains(t, out, KoreanStyle().ResultTitle)
}

func TestEnglishStyle(t *testing.T) {
	r, err := New(StyleFor("en"))
	require.NoError(t, err)
	out, err := r.CardString(extract(t, sampleReply))
	require.NoError(t, err)
	assert.Contains(t, out, "Overall diagnosis")
	assert.Equal(t, "en", r.Style().Name)
	assert.Equal(t, "ko", StyleFor("unknown").Name)
}

func TestMarkdown(t *testing.T) {
	style := KoreanStyle()
	md := Markdown(style, extract(t, sampleReply))

	assert.Contains(t, md, "## "+style.DiagnosisHeading)
	assert.Contains(t, md, "> \"절대 물러서지 않겠다\"")
	assert.Contains(t, md, "- 🎯 상대 분석 노트 쓰기\n- 🎯 매일 10분 시각화 훈련\n")

	partial := Markdown(style, extract(t, "### 1. D\nx"))
	assert.NotContains(t, partial, style.PraiseHeading)
	assert.NotContains(t, partial, style.MissionsHeading)

	assert.NotContains(t, Markdown(style, nil), "##")
}
