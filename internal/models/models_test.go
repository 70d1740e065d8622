package models

import "testing"

func TestSkillLevelRank(t *testing.T) {
	tests := []struct {
		level SkillLevel
		want  int
	}{
		{SkillNovice, 0},
		{SkillBeginner, 1},
		{SkillIntermediate, 2},
		{SkillAdvanced, 3},
		{SkillExpert, 4},
		{SkillLevel("Wizard"), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.Rank(); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFlashcardApplyAnswerCorrect(t *testing.T) {
	tests := []struct {
		name           string
		startStreak    int
		startFrequency int
		wantStreak     int
		wantFrequency  int
	}{
		{"first correct", 0, 5, 1, 3},
		{"second correct", 1, 3, 2, 2},
		{"third correct", 2, 2, 3, 1},
		{"beyond mastery", 5, 1, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Flashcard{ConsecutiveCorrect: tt.startStreak, Frequency: tt.startFrequency, PracticeCount: 4}
			card.ApplyAnswer(true)
			if card.ConsecutiveCorrect != tt.wantStreak {
				t.Errorf("ConsecutiveCorrect = %d, want %d", card.ConsecutiveCorrect, tt.wantStreak)
			}
			if card.Frequency != tt.wantFrequency {
				t.Errorf("Frequency = %d, want %d", card.Frequency, tt.wantFrequency)
			}
			if card.PracticeCount != 5 {
				t.Errorf("PracticeCount = %d, want 5", card.PracticeCount)
			}
		})
	}
}

func TestFlashcardApplyAnswerIncorrect(t *testing.T) {
	card := Flashcard{ConsecutiveCorrect: 2, Frequency: 2, PracticeCount: 4}
	card.ApplyAnswer(false)

	if card.ConsecutiveCorrect != 0 {
		t.Errorf("ConsecutiveCorrect = %d, want 0", card.ConsecutiveCorrect)
	}
	if card.Frequency != FrequencyMax {
		t.Errorf("Frequency = %d, want %d", card.Frequency, FrequencyMax)
	}
	if card.PracticeCount != 5 {
		t.Errorf("PracticeCount = %d, want 5", card.PracticeCount)
	}
}

func TestFlashcardIsMastered(t *testing.T) {
	tests := []struct {
		streak int
		want   bool
	}{
		{0, false},
		{2, false},
		{3, true},
		{7, true},
	}

	for _, tt := range tests {
		card := Flashcard{ConsecutiveCorrect: tt.streak}
		if got := card.IsMastered(); got != tt.want {
			t.Errorf("IsMastered() with streak %d = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestFlashcardMatchesPrompt(t *testing.T) {
	tests := []struct {
		name   string
		word   string
		prompt string
		want   bool
	}{
		{"exact", "bonjour", "Bonjour, comment allez-vous?", true},
		{"case insensitive", "Merci", "je vous dis merci beaucoup", true},
		{"absent", "fromage", "Bonjour tout le monde", false},
		{"empty word", "", "anything at all", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Flashcard{Word: tt.word}
			if got := card.MatchesPrompt(tt.prompt); got != tt.want {
				t.Errorf("MatchesPrompt(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestUserProfileValidate(t *testing.T) {
	valid := UserProfile{
		Email:           "test@example.com",
		Name:            "Test",
		TargetLanguage:  LanguageFrench,
		TargetAccent:    "Parisian",
		SkillLevel:      SkillBeginner,
		PreferredFlavor: FlavorCasual,
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid profile: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*UserProfile)
	}{
		{"missing email", func(p *UserProfile) { p.Email = "" }},
		{"bad language", func(p *UserProfile) { p.TargetLanguage = "Klingon" }},
		{"bad skill level", func(p *UserProfile) { p.SkillLevel = "Legendary" }},
		{"bad flavor", func(p *UserProfile) { p.PreferredFlavor = "Spicy" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
