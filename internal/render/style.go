package render

import "html/template"

// Style holds everything that varies between presentations of the same report
type Style struct {
	Name string
	Lang string

	// Report card
	Icon             string
	Title            string
	Tagline          string
	DiagnosisHeading string
	PraiseHeading    string
	ImproveHeading   string
	MissionsHeading  string
	MissionGlyph     string

	// Colours are trusted CSS values
	Background    template.CSS
	Brand         template.CSS
	PraiseAccent  template.CSS
	PraiseFill    template.CSS
	ImproveAccent template.CSS
	ImproveFill   template.CSS

	// Image export
	ExportLabel    string
	ExportBusy     string
	ExportFailed   string
	ExportFilename string

	// Tool page
	PageTitle    string
	PageHeading  string
	InputLabel   string
	Placeholder  string
	SubmitLabel  string
	LoadingLabel string
	ResultTitle  string
	DismissLabel string

	// Notices
	EmptyWarning   string
	TooLongWarning string
	ServiceFailure string
	ParseFailure   string
	NoReport       string
}

// KoreanStyle is the default Korean presentation
func KoreanStyle() Style {
	return Style{
		Name:             "ko",
		Lang:             "ko",
		Icon:             "🥊",
		Title:            "Win Ugly",
		Tagline:          "승리를 위한 '독한' 마음가짐, 지금 바로 진단받으세요.",
		DiagnosisHeading: "종합 진단",
		PraiseHeading:    "칭찬할 점 (Ugly Points)",
		ImproveHeading:   "보완할 점 (Nice Points)",
		MissionsHeading:  "당신의 Win Ugly 미션",
		MissionGlyph:     "🎯",
		Background:       "#F1F2F5",
		Brand:            "#2BA7D1",
		PraiseAccent:     "rgba(49, 157, 208, 0.60)",
		PraiseFill:       "rgba(49, 157, 208, 0.15)",
		ImproveAccent:    "rgba(238, 125, 141, 0.60)",
		ImproveFill:      "rgba(238, 125, 141, 0.15)",
		ExportLabel:      "리포트 이미지로 저장 🖼️",
		ExportBusy:       "저장 중...",
		ExportFailed:     "이미지 저장에 실패했습니다. 리포트는 그대로 확인할 수 있습니다.",
		ExportFilename:   "win-ugly-report.png",
		PageTitle:        "Win Ugly 전략 분석기",
		PageHeading:      "🥊 Win Ugly 전략 분석기",
		InputLabel:       "👇 당신의 'Win Ugly' 전략을 여기에 입력하세요",
		Placeholder:      "예시: 저는 이번 경기에서 절대 실수하지 않도록 최선을 다하고, 동료들을 격려하며, 관중들에게 좋은 모습을 보여주고 싶습니다.",
		SubmitLabel:      "분석 시작하기",
		LoadingLabel:     "AI 코치가 당신의 전략을 심층 분석하고 있습니다...",
		ResultTitle:      "🏆 당신을 위한 Win Ugly 코칭 리포트",
		DismissLabel:     "닫기",
		EmptyWarning:     "전략을 입력해주세요!",
		TooLongWarning:   "전략이 너무 깁니다. 글자 수를 줄여주세요.",
		ServiceFailure:   "AI 분석 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		ParseFailure:     "AI 응답을 해석하지 못했습니다. 다시 시도해주세요.",
		NoReport:         "아직 생성된 리포트가 없습니다.",
	}
}

// EnglishStyle renders the same report with English copy
func EnglishStyle() Style {
	s := KoreanStyle()
	s.Name = "en"
	s.Lang = "en"
	s.Tagline = "Get a ruthless diagnosis of your winning mindset."
	s.DiagnosisHeading = "Overall diagnosis"
	s.PraiseHeading = "Ugly points"
	s.ImproveHeading = "Nice points"
	s.MissionsHeading = "Your Win Ugly missions"
	s.ExportLabel = "Save report as image 🖼️"
	s.ExportBusy = "Saving..."
	s.ExportFailed = "Could not save the image. The report is still available below."
	s.PageTitle = "Win Ugly strategy analyser"
	s.PageHeading = "🥊 Win Ugly strategy analyser"
	s.InputLabel = "👇 Describe your Win Ugly strategy"
	s.Placeholder = "Example: I will do my best not to make mistakes, encourage my teammates and show the crowd a good game."
	s.SubmitLabel = "Analyse"
	s.LoadingLabel = "The AI coach is analysing your strategy..."
	s.ResultTitle = "🏆 Your Win Ugly coaching report"
	s.DismissLabel = "Dismiss"
	s.EmptyWarning = "Please enter your strategy!"
	s.TooLongWarning = "Your strategy is too long. Please shorten it."
	s.ServiceFailure = "Something went wrong during the AI analysis. Please try again."
	s.ParseFailure = "Could not parse the AI response. Please try again."
	s.NoReport = "No report has been generated yet."
	return s
}

// StyleFor returns the style registered under name, falling back to Korean
func StyleFor(name string) Style {
	if name == "en" {
		return EnglishStyle()
	}
	return KoreanStyle()
}
