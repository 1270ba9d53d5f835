package prompts

// ============================================================================
// Food analysis prompt (Vision Language Model)
// ============================================================================

// AnalyzeInstruction is sent with every photo. It asks for one serving, a fixed
// "이 음식은 ~ 입니다" lead-in, one labeled line per value, and a single combined
// figure when the photo shows several foods. The parser relies on this layout.
const AnalyzeInstruction = `이 음식의 이름과 칼로리, 탄수화물, 단백질, 지방을 대략 알려줘. 1인분 기준이면 좋아.
이 음식은 ~~ 입니다 형식으로만 말해줘. 무조건 줄바꿈해서

- 칼로리:
- 탄수화물:
- 단백질:
- 지방:

이렇게만 말해줘. 그리고 음식이 여러 개일 경우 이름은 '~~와 ~~' 형식으로, 수치는 모두 더해서 말해줘.
음식별로 따로 말하지 말고, 몇~몇 같은 범위 대신 평균을 내서 수치는 반드시 1개로만 말해줘 (예: 20g, 300kcal).`

// SuggestedHashtags are offered when composing a community post.
var SuggestedHashtags = []string{
	"#저탄고지", "#헬시푸드", "#다이어트식단", "#단백질충전", "#운동식단", "#간편식",
}
